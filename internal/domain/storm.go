package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrStormNotFound is returned when no feed exists for a storm id.
	ErrStormNotFound = errors.New("storm not found")

	// ErrNoData is returned when a computation has nothing to work from.
	ErrNoData = errors.New("no data available")
)

// RecordKind distinguishes observed positions from model forecasts.
type RecordKind int

const (
	KindObservation RecordKind = iota
	KindForecast
)

// Record is one parsed feed line.
type Record struct {
	Kind      RecordKind
	Basin     string
	Number    int
	Technique string
	StormName string
	Point     ForecastPoint
}

// TrackPoint is an observed storm position.
type TrackPoint struct {
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	WindSpeedKnots int       `json:"wind_speed_knots"`
	WindSpeedKmh   int       `json:"wind_speed_kmh"`
	PressureMb     int       `json:"pressure_mb"`
	Timestamp      time.Time `json:"timestamp"`
	StormType      string    `json:"storm_type"`
}

// ForecastPoint is a model-issued future position. Timestamp is the issue time;
// the valid time is Timestamp plus ForecastHour.
type ForecastPoint struct {
	TrackPoint
	ForecastHour int       `json:"forecast_hour"`
	Model        ModelCode `json:"model"`
	Technique    string    `json:"technique"`
}

// ValidTime returns the instant the forecast position applies to.
func (p ForecastPoint) ValidTime() time.Time {
	return p.Timestamp.Add(time.Duration(p.ForecastHour) * time.Hour)
}

// Storm is the aggregate root for one tropical cyclone.
type Storm struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Year                   int             `json:"year"`
	Basin                  string          `json:"basin"`
	CurrentPosition        TrackPoint      `json:"current_position"`
	Track                  []TrackPoint    `json:"track"`
	Forecast               []ForecastPoint `json:"forecast"`
	IsNearRegionOfInterest bool            `json:"is_near_region_of_interest"`
}

// BuildOptions adjusts how BuildStorm derives a storm's display name.
type BuildOptions struct {
	// PreferDeckName uses the name column of full-width best-track lines,
	// when it holds a real name, ahead of the technique rule.
	PreferDeckName bool
}

// BuildStorm assembles a storm from the parsed lines of its best-track feed.
// Returns false when the feed produced no observation. The name is the first
// non-CARQ technique among the observations, falling back to the BASIN+number
// label. Track points are sorted by time and de-duplicated per synoptic time
// (the first line wins, later lines at the same time only repeat the position
// with other wind radii).
func BuildStorm(id StormID, records []Record) (Storm, bool) {
	return BuildStormWith(id, records, BuildOptions{})
}

// BuildStormWith is BuildStorm with explicit options.
func BuildStormWith(id StormID, records []Record, opts BuildOptions) (Storm, bool) {
	var (
		track    []TrackPoint
		forecast []ForecastPoint
		name     string
		deckName string
		seen     = make(map[time.Time]bool)
	)

	for _, rec := range records {
		if rec.Kind == KindForecast {
			forecast = append(forecast, rec.Point)
			continue
		}
		if opts.PreferDeckName && isStormName(rec.StormName) {
			deckName = rec.StormName
		}
		if name == "" && rec.Technique != "" && rec.Technique != TechniqueCARQ {
			name = rec.Technique
		}
		if seen[rec.Point.Timestamp] {
			continue
		}
		seen[rec.Point.Timestamp] = true
		track = append(track, rec.Point.TrackPoint)
	}

	if len(track) == 0 {
		return Storm{}, false
	}

	sort.SliceStable(track, func(i, j int) bool {
		return track[i].Timestamp.Before(track[j].Timestamp)
	})
	SortForecast(forecast)

	if deckName != "" {
		name = deckName
	}
	if name == "" {
		name = id.Label()
	}

	current := track[len(track)-1]
	return Storm{
		ID:                     id.String(),
		Name:                   name,
		Year:                   id.Year,
		Basin:                  id.Basin,
		CurrentPosition:        current,
		Track:                  track,
		Forecast:               forecast,
		IsNearRegionOfInterest: InRegionOfInterest(current.Lat, current.Lon),
	}, true
}

// isStormName rejects the placeholders agencies use before a storm is named.
func isStormName(s string) bool {
	switch s {
	case "", "INVEST", "NONAME", "UNNAMED":
		return false
	}
	return true
}

// ForecastPoints extracts the forecast records from a parsed feed.
func ForecastPoints(records []Record) []ForecastPoint {
	var out []ForecastPoint
	for _, rec := range records {
		if rec.Kind == KindForecast {
			out = append(out, rec.Point)
		}
	}
	return out
}

// LatestCycle narrows forecast points to the most recent issue time. Aid decks
// accumulate every cycle over a storm's life; only the newest is current.
func LatestCycle(points []ForecastPoint) []ForecastPoint {
	var latest time.Time
	for _, p := range points {
		if p.Timestamp.After(latest) {
			latest = p.Timestamp
		}
	}
	out := make([]ForecastPoint, 0, len(points))
	for _, p := range points {
		if p.Timestamp.Equal(latest) {
			out = append(out, p)
		}
	}
	return out
}

// SortForecast orders forecast points by valid time, then model code.
func SortForecast(points []ForecastPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		vi, vj := points[i].ValidTime(), points[j].ValidTime()
		if !vi.Equal(vj) {
			return vi.Before(vj)
		}
		return points[i].Model < points[j].Model
	})
}

// LatestObservation returns the newest observation time in a storm's track.
func (s Storm) LatestObservation() time.Time {
	if len(s.Track) == 0 {
		return time.Time{}
	}
	return s.Track[len(s.Track)-1].Timestamp
}
