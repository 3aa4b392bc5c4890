// Package impact estimates landfall and the population exposed to a storm.
package impact

import (
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
)

// Predictor derives landfall and affected-area assessments from a storm.
// It reads the static city registry and coastline samples and holds no other state.
type Predictor struct {
	clock           clockwork.Clock
	cities          []domain.City
	coastline       []domain.Coordinate
	projectPosition bool
}

// NewPredictor creates a Predictor over the built-in registry and coastline.
// With projectPosition set, medium-confidence landfall is reported at the
// position the storm reaches along its bearing instead of its current position.
func NewPredictor(clock clockwork.Clock, projectPosition bool) *Predictor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Predictor{
		clock:           clock,
		cities:          domain.Cities(),
		coastline:       domain.Coastline(),
		projectPosition: projectPosition,
	}
}

// StormImpact bundles the landfall prediction and affected-area assessment.
type StormImpact struct {
	StormID       string        `json:"storm_id"`
	Landfall      Landfall      `json:"landfall"`
	AffectedAreas AffectedAreas `json:"affected_areas"`
}

// StormImpact runs both assessments for a storm.
func (p *Predictor) StormImpact(storm domain.Storm) StormImpact {
	path := forecastPath(storm)
	return StormImpact{
		StormID:       storm.ID,
		Landfall:      p.predictLandfall(storm, path),
		AffectedAreas: p.assessAffectedAreas(storm, path),
	}
}

// forecastPath is the consensus of the storm's latest forecast cycle.
func forecastPath(storm domain.Storm) []ensemble.ConsensusPoint {
	return ensemble.ConsensusTrack(domain.LatestCycle(storm.Forecast))
}
