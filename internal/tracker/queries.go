package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
	"github.com/couchcryptid/cyclone-track-service/internal/impact"
)

// ListActiveStorms returns storms observed within the activity window. A
// fresh cache is served directly. When a refresh fails the last good
// snapshot is served instead; with no snapshot at all the result is an empty
// list and an error wrapping domain.ErrNoData. The returned slice is the
// caller's own; the tracks and forecasts inside each storm are shared with the
// cache and must be treated as read-only.
func (s *Service) ListActiveStorms(ctx context.Context) ([]domain.Storm, error) {
	if snap, state := s.cache.Lookup(); state == CacheFresh {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return slices.Clone(snap.Storms), nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	if snap, state := s.cache.Lookup(); state == CacheFresh {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return slices.Clone(snap.Storms), nil
	}

	snap, err := s.refreshLocked(ctx)
	if err == nil {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return slices.Clone(snap.Storms), nil
	}

	if prev, state := s.cache.Lookup(); state != CacheEmpty {
		s.metrics.CacheLookups.WithLabelValues("stale").Inc()
		s.logger.Warn("refresh failed, serving stale storm list",
			"error", err,
			"cycle_id", prev.CycleID,
			"fetched_at", prev.FetchedAt,
		)
		return slices.Clone(prev.Storms), nil
	}

	s.metrics.CacheLookups.WithLabelValues("empty").Inc()
	s.logger.Error("refresh failed with no cached storm list", "error", err)
	return []domain.Storm{}, fmt.Errorf("%w: %w", domain.ErrNoData, err)
}

// ListStormsNearRegion filters the active storms to those inside the region of interest.
func (s *Service) ListStormsNearRegion(ctx context.Context) ([]domain.Storm, error) {
	storms, err := s.ListActiveStorms(ctx)
	near := make([]domain.Storm, 0, len(storms))
	for _, st := range storms {
		if st.IsNearRegionOfInterest {
			near = append(near, st)
		}
	}
	return near, err
}

// GetStormDetails fetches one storm directly, bypassing the cache. The
// forecast deck is attached when available; its absence is not an error.
func (s *Service) GetStormDetails(ctx context.Context, rawID string) (domain.Storm, error) {
	id, err := domain.ParseStormID(rawID)
	if err != nil {
		return domain.Storm{}, err
	}

	records, err := s.fetcher.FetchBestTrack(ctx, id)
	if err != nil {
		return domain.Storm{}, fmt.Errorf("storm %s: %w", id, err)
	}
	storm, ok := domain.BuildStormWith(id, records, s.buildOptions())
	if !ok {
		return domain.Storm{}, fmt.Errorf("storm %s has no observations: %w", id, domain.ErrStormNotFound)
	}

	aids, err := s.fetcher.FetchForecast(ctx, id)
	switch {
	case err == nil:
		if points := domain.LatestCycle(domain.ForecastPoints(aids)); len(points) > 0 {
			domain.SortForecast(points)
			storm.Forecast = points
		}
	case errors.Is(err, domain.ErrStormNotFound):
		s.logger.Debug("no forecast deck", "storm_id", storm.ID)
	default:
		s.logger.Warn("forecast deck unavailable", "storm_id", storm.ID, "error", err)
	}

	return storm, nil
}

// ComputeEnsemble aggregates the latest forecast cycle of a storm. A storm
// with no forecast deck yields domain.ErrNoData.
func (s *Service) ComputeEnsemble(ctx context.Context, rawID string) (ensemble.Result, error) {
	id, err := domain.ParseStormID(rawID)
	if err != nil {
		return ensemble.Result{}, err
	}

	records, err := s.fetcher.FetchForecast(ctx, id)
	if errors.Is(err, domain.ErrStormNotFound) {
		return ensemble.Result{}, fmt.Errorf("no forecast deck for %s: %w", id, domain.ErrNoData)
	}
	if err != nil {
		return ensemble.Result{}, fmt.Errorf("forecast for %s: %w", id, err)
	}

	res, err := ensemble.Compute(domain.LatestCycle(domain.ForecastPoints(records)))
	if err != nil {
		return ensemble.Result{}, fmt.Errorf("ensemble for %s: %w", id, err)
	}
	return res, nil
}

// ComputeSpaghetti reshapes a storm's ensemble into one track per model.
func (s *Service) ComputeSpaghetti(ctx context.Context, rawID string) (ensemble.Spaghetti, error) {
	res, err := s.ComputeEnsemble(ctx, rawID)
	if err != nil {
		return ensemble.Spaghetti{}, err
	}
	return ensemble.ToSpaghetti(res), nil
}

// GetStormImpact runs the landfall and affected-area assessments on a storm
// the caller already holds.
func (s *Service) GetStormImpact(storm domain.Storm) impact.StormImpact {
	return s.predictor.StormImpact(storm)
}

// GetStormImpactByID fetches a storm's details and assesses its impact.
func (s *Service) GetStormImpactByID(ctx context.Context, rawID string) (impact.StormImpact, error) {
	storm, err := s.GetStormDetails(ctx, rawID)
	if err != nil {
		return impact.StormImpact{}, err
	}
	return s.GetStormImpact(storm), nil
}

// ListForecastModelMetadata returns the static model display table.
func (s *Service) ListForecastModelMetadata() []domain.ModelMetadata {
	return domain.ForecastModels()
}

// ClearCache drops the cached storm list so the next listing refetches.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Info("storm cache cleared")
}
