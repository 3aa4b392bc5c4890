// Package tracker enumerates storms from the ATCF feed, caches the active set,
// and answers detail, ensemble, and impact queries for the read API.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/impact"
	"github.com/couchcryptid/cyclone-track-service/internal/observability"
)

// FeedFetcher downloads and parses a storm's decks. A missing deck is
// reported as domain.ErrStormNotFound.
type FeedFetcher interface {
	FetchBestTrack(ctx context.Context, id domain.StormID) ([]domain.Record, error)
	FetchForecast(ctx context.Context, id domain.StormID) ([]domain.Record, error)
}

// Publisher receives every snapshot produced by a successful refresh.
type Publisher interface {
	PublishSnapshot(ctx context.Context, snap domain.Snapshot) error
}

// Options tunes enumeration and caching.
type Options struct {
	Basin           string
	MaxSequence     int
	Concurrency     int
	CacheTTL        time.Duration
	ActiveWindow    time.Duration
	ProjectLandfall bool
	PreferDeckName  bool
	PublishTimeout  time.Duration
}

// DefaultOptions enumerates wp01..wp30 with a ten minute cache and a seven day activity window.
func DefaultOptions() Options {
	return Options{
		Basin:          "wp",
		MaxSequence:    30,
		Concurrency:    30,
		CacheTTL:       10 * time.Minute,
		ActiveWindow:   7 * 24 * time.Hour,
		PublishTimeout: 10 * time.Second,
	}
}

// Service is the fetch and cache orchestrator.
type Service struct {
	fetcher   FeedFetcher
	publisher Publisher
	cache     SnapshotCache
	predictor *impact.Predictor
	opts      Options
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	refreshMu sync.Mutex
	ready     atomic.Bool

	// Snapshot publishes run in the background; publishMu keeps them in order.
	publishing    sync.WaitGroup
	publishMu     sync.Mutex
	lastPublished time.Time
}

// New creates a Service. publisher may be nil.
func New(fetcher FeedFetcher, publisher Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = opts.MaxSequence
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultOptions().PublishTimeout
	}
	return &Service{
		fetcher:   fetcher,
		publisher: publisher,
		cache:     NewTTLCache(opts.CacheTTL, clock),
		predictor: impact.NewPredictor(clock, opts.ProjectLandfall),
		opts:      opts,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

func (s *Service) buildOptions() domain.BuildOptions {
	return domain.BuildOptions{PreferDeckName: s.opts.PreferDeckName}
}

// CheckReadiness returns nil once a refresh cycle has succeeded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no storm enumeration has completed yet")
	}
	return nil
}

// Close waits for background snapshot publishes to finish, or for ctx to end.
func (s *Service) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.publishing.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for snapshot publish: %w", ctx.Err())
	}
}

// Run refreshes the active storm set immediately and then once per cache TTL
// until the context is cancelled. Failed cycles are logged and retried on the
// next tick.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("tracker started",
		"basin", s.opts.Basin,
		"max_sequence", s.opts.MaxSequence,
		"cache_ttl", s.opts.CacheTTL,
	)

	ticker := s.clock.NewTicker(s.opts.CacheTTL)
	defer ticker.Stop()

	for {
		if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("scheduled refresh failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("tracker stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}
