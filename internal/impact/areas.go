package impact

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mmcloughlin/geohash"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
)

// TimeframeCurrent labels exposure from the storm's current position.
const TimeframeCurrent = "current"

// CityImpact is the retained exposure of one city.
type CityImpact struct {
	City                  string      `json:"city"`
	Population            int64       `json:"population"`
	DistanceKm            float64     `json:"distance_km"`
	ImpactLevel           ImpactLevel `json:"impact_level"`
	EstimatedWindSpeedKmh int         `json:"estimated_wind_speed_kmh"`
	IsCoastal             bool        `json:"is_coastal"`
	Timeframe             string      `json:"timeframe"`
	Geohash               string      `json:"geohash"`
}

// Recommendation is a public-safety action derived from city impacts.
type Recommendation struct {
	Priority string   `json:"priority"`
	Action   string   `json:"action"`
	Message  string   `json:"message"`
	Cities   []string `json:"cities"`
}

// AffectedAreas is the population exposure assessment for a storm.
type AffectedAreas struct {
	AffectedCities        []string         `json:"affected_cities"`
	TotalPopulationAtRisk int64            `json:"total_population_at_risk"`
	Cities                []CityImpact     `json:"per_city_impact"`
	Recommendations       []Recommendation `json:"recommendations"`
}

// exposurePoint is a storm position evaluated against the registry.
type exposurePoint struct {
	lat, lon  float64
	windKmh   int
	timeframe string
}

// AssessAffectedAreas evaluates every registry city against the current
// position and each consensus forecast point, keeping the most severe
// exposure per city.
func (p *Predictor) AssessAffectedAreas(storm domain.Storm) AffectedAreas {
	return p.assessAffectedAreas(storm, forecastPath(storm))
}

func (p *Predictor) assessAffectedAreas(storm domain.Storm, path []ensemble.ConsensusPoint) AffectedAreas {
	points := make([]exposurePoint, 0, len(path)+1)
	if len(storm.Track) > 0 {
		cur := storm.CurrentPosition
		points = append(points, exposurePoint{lat: cur.Lat, lon: cur.Lon, windKmh: cur.WindSpeedKmh, timeframe: TimeframeCurrent})
	}
	for _, cp := range path {
		points = append(points, exposurePoint{
			lat:       cp.Lat,
			lon:       cp.Lon,
			windKmh:   cp.WindSpeedKmh,
			timeframe: fmt.Sprintf("+%dh", cp.ForecastHour),
		})
	}

	retained := make(map[string]CityImpact)
	for _, pt := range points {
		for _, city := range p.cities {
			dist := domain.Haversine(pt.lat, pt.lon, city.Lat, city.Lon)
			level, decay, ok := classifyExposure(dist, pt.windKmh)
			if !ok {
				continue
			}
			if prev, seen := retained[city.Name]; seen && prev.ImpactLevel.severity() >= level.severity() {
				continue
			}
			retained[city.Name] = CityImpact{
				City:                  city.Name,
				Population:            city.Population,
				DistanceKm:            dist,
				ImpactLevel:           level,
				EstimatedWindSpeedKmh: int(math.Round(float64(pt.windKmh) * decay)),
				IsCoastal:             city.IsCoastal,
				Timeframe:             pt.timeframe,
				Geohash:               geohash.EncodeWithPrecision(city.Lat, city.Lon, geohashPrecision),
			}
		}
	}

	impacts := make([]CityImpact, 0, len(retained))
	for _, ci := range retained {
		impacts = append(impacts, ci)
	}
	sort.Slice(impacts, func(i, j int) bool {
		si, sj := impacts[i].ImpactLevel.severity(), impacts[j].ImpactLevel.severity()
		if si != sj {
			return si > sj
		}
		if impacts[i].DistanceKm != impacts[j].DistanceKm {
			return impacts[i].DistanceKm < impacts[j].DistanceKm
		}
		return impacts[i].City < impacts[j].City
	})

	out := AffectedAreas{
		AffectedCities: make([]string, 0, len(impacts)),
		Cities:         impacts,
	}
	for _, ci := range impacts {
		out.AffectedCities = append(out.AffectedCities, ci.City)
		out.TotalPopulationAtRisk += ci.Population
	}
	out.Recommendations = recommendations(impacts)
	return out
}

// recommendations derives independent actions from the retained impacts. A
// city may appear in more than one.
func recommendations(impacts []CityImpact) []Recommendation {
	var extreme, high, surge []CityImpact
	for _, ci := range impacts {
		switch ci.ImpactLevel {
		case ImpactExtreme:
			extreme = append(extreme, ci)
		case ImpactHigh:
			high = append(high, ci)
		}
		if ci.IsCoastal && (ci.ImpactLevel == ImpactExtreme || ci.ImpactLevel == ImpactHigh) {
			surge = append(surge, ci)
		}
	}

	recs := []Recommendation{}
	if len(extreme) > 0 {
		recs = append(recs, recommendation("critical", "immediate-evacuation",
			"Immediate evacuation recommended", extreme))
	}
	if len(high) > 0 {
		recs = append(recs, recommendation("high", "prepare-evacuation",
			"Prepare for evacuation", high))
	}
	if len(surge) > 0 {
		recs = append(recs, recommendation("high", "storm-surge-warning",
			"Storm surge warning for coastal areas", surge))
	}
	return recs
}

func recommendation(priority, action, headline string, impacts []CityImpact) Recommendation {
	names := make([]string, 0, len(impacts))
	var population int64
	for _, ci := range impacts {
		names = append(names, ci.City)
		population += ci.Population
	}
	return Recommendation{
		Priority: priority,
		Action:   action,
		Message: fmt.Sprintf("%s: %s (%s residents)",
			headline, strings.Join(names, ", "), humanize.Comma(population)),
		Cities: names,
	}
}
