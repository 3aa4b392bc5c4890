package impact

import (
	"fmt"
	"math"
	"time"

	"github.com/mmcloughlin/geohash"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
)

const (
	// landfallRadiusKm is how close a forecast point must come to a coastline
	// sample to count as landfall.
	landfallRadiusKm = 20.0

	// maxExtrapolationKm is the furthest from the coast a storm may be for a
	// landfall to be extrapolated from its current motion.
	maxExtrapolationKm = 500.0

	// geohashPrecision yields cells of roughly 1.2 km x 0.6 km.
	geohashPrecision = 6

	ReasonInsufficientTrack = "insufficient track data"
	ReasonStationary        = "storm is not moving"
)

// LandfallConfidence is the confidence of a landfall prediction.
type LandfallConfidence string

const (
	LandfallHigh   LandfallConfidence = "high"
	LandfallMedium LandfallConfidence = "medium"
)

// Location is where landfall is expected.
type Location struct {
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	NearestCityName string  `json:"nearest_city_name"`
	Geohash         string  `json:"geohash"`
}

// Landfall is a landfall prediction. When WillMakeLandfall is false only
// Reason (and DistanceToCoastKm when known) are set.
type Landfall struct {
	WillMakeLandfall       bool               `json:"will_make_landfall"`
	Confidence             LandfallConfidence `json:"confidence,omitempty"`
	Location               *Location          `json:"location,omitempty"`
	EstimatedTime          *time.Time         `json:"estimated_time,omitempty"`
	HoursUntilLandfall     float64            `json:"hours_until_landfall,omitempty"`
	ImpactIntensity        Intensity          `json:"impact_intensity,omitempty"`
	ApproachBearingDegrees float64            `json:"approach_bearing_degrees,omitempty"`
	ApproachSpeedKmh       float64            `json:"approach_speed_kmh,omitempty"`
	DistanceToCoastKm      float64            `json:"distance_to_coast_km,omitempty"`
	Reason                 string             `json:"reason,omitempty"`
}

// PredictLandfall estimates where and when a storm reaches the coast.
func (p *Predictor) PredictLandfall(storm domain.Storm) Landfall {
	return p.predictLandfall(storm, forecastPath(storm))
}

func (p *Predictor) predictLandfall(storm domain.Storm, path []ensemble.ConsensusPoint) Landfall {
	track := storm.Track
	if len(track) < 2 {
		return Landfall{Reason: ReasonInsufficientTrack}
	}

	speed := movementSpeedKmh(track)
	last, prev := track[len(track)-1], track[len(track)-2]
	bearing := domain.Bearing(prev.Lat, prev.Lon, last.Lat, last.Lon)
	now := p.clock.Now()

	for _, cp := range path {
		if domain.DistanceToCoast(cp.Lat, cp.Lon, p.coastline) >= landfallRadiusKm {
			continue
		}
		eta := cp.ValidTime
		return Landfall{
			WillMakeLandfall:       true,
			Confidence:             LandfallHigh,
			Location:               p.location(cp.Lat, cp.Lon),
			EstimatedTime:          &eta,
			HoursUntilLandfall:     hoursBetween(now, eta),
			ImpactIntensity:        IntensityFor(cp.WindSpeedKmh),
			ApproachBearingDegrees: bearing,
			ApproachSpeedKmh:       speed,
		}
	}

	current := storm.CurrentPosition
	distance := domain.DistanceToCoast(current.Lat, current.Lon, p.coastline)
	if distance > maxExtrapolationKm {
		return Landfall{
			DistanceToCoastKm: distance,
			Reason:            fmt.Sprintf("storm is %.0f km from the coast", distance),
		}
	}
	if speed <= 0 {
		return Landfall{DistanceToCoastKm: distance, Reason: ReasonStationary}
	}

	hours := distance / speed
	lat, lon := current.Lat, current.Lon
	if p.projectPosition {
		lat, lon = domain.Destination(lat, lon, bearing, distance)
	}
	eta := now.Add(time.Duration(hours * float64(time.Hour)))

	return Landfall{
		WillMakeLandfall:       true,
		Confidence:             LandfallMedium,
		Location:               p.location(lat, lon),
		EstimatedTime:          &eta,
		HoursUntilLandfall:     hours,
		ImpactIntensity:        IntensityFor(current.WindSpeedKmh),
		ApproachBearingDegrees: bearing,
		ApproachSpeedKmh:       speed,
		DistanceToCoastKm:      distance,
	}
}

func (p *Predictor) location(lat, lon float64) *Location {
	loc := &Location{
		Lat:     lat,
		Lon:     lon,
		Geohash: geohash.EncodeWithPrecision(lat, lon, geohashPrecision),
	}
	if city, _, ok := domain.NearestCity(lat, lon, p.cities); ok {
		loc.NearestCityName = city.Name
	}
	return loc
}

// movementSpeedKmh averages the segment speeds over the last three track points.
// Segments with no elapsed time are skipped.
func movementSpeedKmh(track []domain.TrackPoint) float64 {
	start := len(track) - 3
	if start < 0 {
		start = 0
	}
	recent := track[start:]

	var total float64
	var n int
	for i := 1; i < len(recent); i++ {
		hours := recent[i].Timestamp.Sub(recent[i-1].Timestamp).Hours()
		if hours <= 0 {
			continue
		}
		km := domain.Haversine(recent[i-1].Lat, recent[i-1].Lon, recent[i].Lat, recent[i].Lon)
		total += km / hours
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func hoursBetween(from, to time.Time) float64 {
	return math.Max(0, to.Sub(from).Hours())
}
