package ensemble

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

// kmPerDegree approximates the length of one degree of latitude.
const kmPerDegree = 111.0

// ConsensusPoint is the mean forecast position and intensity at one forecast hour.
type ConsensusPoint struct {
	ForecastHour   int       `json:"forecast_hour"`
	ValidTime      time.Time `json:"valid_time"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	WindSpeedKnots float64   `json:"wind_speed_knots"`
	WindSpeedKmh   int       `json:"wind_speed_kmh"`
	PressureMb     float64   `json:"pressure_mb"`
	ModelCount     int       `json:"contributing_model_count"`
}

// Bounds is the bounding box of the contributing positions.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// UncertaintyPoint is the spread of model positions at one forecast hour.
type UncertaintyPoint struct {
	ForecastHour          int        `json:"forecast_hour"`
	PositionUncertaintyKm float64    `json:"position_uncertainty_km"`
	LatStdDev             float64    `json:"lat_std_dev"`
	LonStdDev             float64    `json:"lon_std_dev"`
	Bounds                Bounds     `json:"bounds"`
	Confidence            Confidence `json:"confidence_level"`
}

// Result is the full ensemble for one storm.
type Result struct {
	Models      map[domain.ModelCode][]domain.ForecastPoint `json:"models"`
	Consensus   []ConsensusPoint                            `json:"consensus"`
	Uncertainty []UncertaintyPoint                          `json:"uncertainty"`
	ModelCount  int                                         `json:"model_count"`
}

// Compute builds the ensemble from a storm's forecast points. It returns
// domain.ErrNoData when there is nothing to aggregate.
func Compute(points []domain.ForecastPoint) (Result, error) {
	models := groupByModel(points)
	if len(models) == 0 {
		return Result{}, fmt.Errorf("compute ensemble: %w", domain.ErrNoData)
	}

	codes := sortedCodes(models)
	hours := forecastHours(models)

	res := Result{
		Models:      models,
		Consensus:   make([]ConsensusPoint, 0, len(hours)),
		Uncertainty: make([]UncertaintyPoint, 0, len(hours)),
		ModelCount:  len(models),
	}

	for _, hour := range hours {
		contributors := make([]domain.ForecastPoint, 0, len(codes))
		for _, code := range codes {
			if p, ok := atHour(models[code], hour); ok {
				contributors = append(contributors, p)
			}
		}

		cp := consensusAt(hour, contributors)
		res.Consensus = append(res.Consensus, cp)

		if up, ok := uncertaintyAt(hour, cp.Lat, contributors); ok {
			res.Uncertainty = append(res.Uncertainty, up)
		}
	}

	return res, nil
}

// ConsensusTrack returns only the consensus points, or nil when there is no forecast.
func ConsensusTrack(points []domain.ForecastPoint) []ConsensusPoint {
	res, err := Compute(points)
	if err != nil {
		return nil
	}
	return res.Consensus
}

func groupByModel(points []domain.ForecastPoint) map[domain.ModelCode][]domain.ForecastPoint {
	models := make(map[domain.ModelCode][]domain.ForecastPoint)
	for _, p := range points {
		if p.ForecastHour <= 0 {
			continue
		}
		models[p.Model] = append(models[p.Model], p)
	}
	for code := range models {
		domain.SortForecast(models[code])
	}
	return models
}

func sortedCodes(models map[domain.ModelCode][]domain.ForecastPoint) []domain.ModelCode {
	codes := make([]domain.ModelCode, 0, len(models))
	for code := range models {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func forecastHours(models map[domain.ModelCode][]domain.ForecastPoint) []int {
	seen := make(map[int]bool)
	var hours []int
	for _, pts := range models {
		for _, p := range pts {
			if !seen[p.ForecastHour] {
				seen[p.ForecastHour] = true
				hours = append(hours, p.ForecastHour)
			}
		}
	}
	sort.Ints(hours)
	return hours
}

// atHour returns the model's first record at exactly the given hour. Later
// records at the same hour repeat the position with other wind radii.
func atHour(points []domain.ForecastPoint, hour int) (domain.ForecastPoint, bool) {
	for _, p := range points {
		if p.ForecastHour == hour {
			return p, true
		}
	}
	return domain.ForecastPoint{}, false
}

func consensusAt(hour int, contributors []domain.ForecastPoint) ConsensusPoint {
	n := len(contributors)
	lats := make([]float64, n)
	lons := make([]float64, n)
	winds := make([]float64, n)
	pressures := make([]float64, n)
	var valid time.Time
	for i, p := range contributors {
		lats[i] = p.Lat
		lons[i] = p.Lon
		winds[i] = float64(p.WindSpeedKnots)
		pressures[i] = float64(p.PressureMb)
		if vt := p.ValidTime(); vt.After(valid) {
			valid = vt
		}
	}

	wind := stat.Mean(winds, nil)
	return ConsensusPoint{
		ForecastHour:   hour,
		ValidTime:      valid,
		Lat:            stat.Mean(lats, nil),
		Lon:            stat.Mean(lons, nil),
		WindSpeedKnots: wind,
		WindSpeedKmh:   domain.KnotsToKmh(wind),
		PressureMb:     stat.Mean(pressures, nil),
		ModelCount:     n,
	}
}

func uncertaintyAt(hour int, meanLat float64, contributors []domain.ForecastPoint) (UncertaintyPoint, bool) {
	if len(contributors) < 2 {
		return UncertaintyPoint{}, false
	}

	lats := make([]float64, len(contributors))
	lons := make([]float64, len(contributors))
	for i, p := range contributors {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}

	_, latStd := stat.PopMeanStdDev(lats, nil)
	_, lonStd := stat.PopMeanStdDev(lons, nil)

	latKm := latStd * kmPerDegree
	lonKm := lonStd * kmPerDegree * math.Cos(meanLat*math.Pi/180)
	km := math.Hypot(latKm, lonKm)

	return UncertaintyPoint{
		ForecastHour:          hour,
		PositionUncertaintyKm: km,
		LatStdDev:             latStd,
		LonStdDev:             lonStd,
		Bounds: Bounds{
			MinLat: floats.Min(lats),
			MaxLat: floats.Max(lats),
			MinLon: floats.Min(lons),
			MaxLon: floats.Max(lons),
		},
		Confidence: ConfidenceLevel(len(contributors), km),
	}, true
}
