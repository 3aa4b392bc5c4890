package ensemble

import (
	"time"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

// SpaghettiPoint is one plotted position on a model track.
type SpaghettiPoint struct {
	ForecastHour int       `json:"forecast_hour"`
	ValidTime    time.Time `json:"valid_time"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	WindSpeedKmh int       `json:"wind_speed_kmh"`
}

// ModelTrack is one model's forecast path with its display metadata.
type ModelTrack struct {
	Model  domain.ModelMetadata `json:"model"`
	Points []SpaghettiPoint     `json:"points"`
}

// Spaghetti is the plotting view of an ensemble: one track per model plus the consensus.
type Spaghetti struct {
	Tracks     []ModelTrack     `json:"tracks"`
	Consensus  []ConsensusPoint `json:"consensus"`
	ModelCount int              `json:"model_count"`
}

// ToSpaghetti reshapes an ensemble for plotting. Tracks follow the model
// metadata table order.
func ToSpaghetti(res Result) Spaghetti {
	out := Spaghetti{
		Tracks:     make([]ModelTrack, 0, len(res.Models)),
		Consensus:  res.Consensus,
		ModelCount: res.ModelCount,
	}

	for _, meta := range domain.ForecastModels() {
		pts, ok := res.Models[meta.Code]
		if !ok {
			continue
		}
		track := ModelTrack{Model: meta, Points: make([]SpaghettiPoint, 0, len(pts))}
		lastHour := -1
		for _, p := range pts {
			if p.ForecastHour == lastHour {
				continue
			}
			lastHour = p.ForecastHour
			track.Points = append(track.Points, SpaghettiPoint{
				ForecastHour: p.ForecastHour,
				ValidTime:    p.ValidTime(),
				Lat:          p.Lat,
				Lon:          p.Lon,
				WindSpeedKmh: p.WindSpeedKmh,
			})
		}
		out.Tracks = append(out.Tracks, track)
	}

	return out
}
