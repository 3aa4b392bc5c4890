package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

// candidate is the outcome of probing one sequence number.
type candidate struct {
	storm domain.Storm
	found bool
	err   error
}

// Refresh runs an enumeration cycle now, regardless of cache freshness, and
// stores the result on success.
func (s *Service) Refresh(ctx context.Context) (domain.Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) (domain.Snapshot, error) {
	start := s.clock.Now()
	snap, err := s.enumerate(ctx)
	s.metrics.RefreshDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		return domain.Snapshot{}, err
	}

	s.cache.Put(snap)
	s.ready.Store(true)
	s.metrics.ActiveStorms.Set(float64(len(snap.Storms)))
	s.logger.Info("storm enumeration complete",
		"cycle_id", snap.CycleID,
		"active_storms", len(snap.Storms),
	)

	s.startPublish(ctx, snap)
	return snap, nil
}

// enumerate probes every candidate sequence number concurrently. Each worker
// writes only its own slot; results are merged after all fetches resolve.
func (s *Service) enumerate(ctx context.Context) (domain.Snapshot, error) {
	now := s.clock.Now().UTC()
	cycleID := uuid.NewString()
	year := now.Year()

	results := make([]candidate, s.opts.MaxSequence)

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i := range results {
		id := domain.NewStormID(s.opts.Basin, i+1, year)
		g.Go(func() error {
			results[i] = s.probe(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("enumeration interrupted: %w", err)
	}

	cutoff := now.Add(-s.opts.ActiveWindow)
	storms := make([]domain.Storm, 0, len(results))
	var failures int
	var lastErr error
	for _, r := range results {
		switch {
		case r.err != nil && !errors.Is(r.err, domain.ErrStormNotFound):
			failures++
			lastErr = r.err
		case !r.found:
		case r.storm.LatestObservation().Before(cutoff):
			s.logger.Debug("storm inactive", "storm_id", r.storm.ID, "last_observation", r.storm.LatestObservation())
		default:
			storms = append(storms, r.storm)
		}
	}

	if len(results) > 0 && failures == len(results) {
		return domain.Snapshot{}, fmt.Errorf("all %d candidates failed: %w", failures, lastErr)
	}
	if failures > 0 {
		s.logger.Warn("some candidates failed", "cycle_id", cycleID, "failed", failures, "error", lastErr)
	}

	return domain.Snapshot{
		CycleID:   cycleID,
		Basin:     s.opts.Basin,
		FetchedAt: now,
		Storms:    storms,
	}, nil
}

func (s *Service) probe(ctx context.Context, id domain.StormID) candidate {
	records, err := s.fetcher.FetchBestTrack(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStormNotFound) {
			s.logger.Debug("candidate not found", "storm_id", id.String())
		}
		return candidate{err: err}
	}
	storm, ok := domain.BuildStormWith(id, records, s.buildOptions())
	return candidate{storm: storm, found: ok}
}

// startPublish hands the snapshot to the publisher without blocking the
// refresh. The publish is detached from the caller's cancellation and bounded
// by PublishTimeout instead. A snapshot older than one already published is
// dropped.
func (s *Service) startPublish(ctx context.Context, snap domain.Snapshot) {
	if s.publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()

		s.publishMu.Lock()
		defer s.publishMu.Unlock()
		if snap.FetchedAt.Before(s.lastPublished) {
			s.logger.Debug("superseded snapshot not published", "cycle_id", snap.CycleID)
			return
		}
		s.lastPublished = snap.FetchedAt

		ctx, cancel := context.WithTimeout(ctx, s.opts.PublishTimeout)
		defer cancel()
		s.publish(ctx, snap)
	}()
}

func (s *Service) publish(ctx context.Context, snap domain.Snapshot) {
	if err := s.publisher.PublishSnapshot(ctx, snap); err != nil {
		s.metrics.SnapshotsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish snapshot failed", "cycle_id", snap.CycleID, "error", err)
		return
	}
	s.metrics.SnapshotsPublished.WithLabelValues("success").Inc()
}
