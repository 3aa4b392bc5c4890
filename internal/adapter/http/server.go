package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
	"github.com/couchcryptid/cyclone-track-service/internal/impact"
)

// StormService is the read surface the API exposes. *tracker.Service implements it.
type StormService interface {
	sharedobs.ReadinessChecker

	ListActiveStorms(ctx context.Context) ([]domain.Storm, error)
	ListStormsNearRegion(ctx context.Context) ([]domain.Storm, error)
	GetStormDetails(ctx context.Context, id string) (domain.Storm, error)
	ComputeEnsemble(ctx context.Context, id string) (ensemble.Result, error)
	ComputeSpaghetti(ctx context.Context, id string) (ensemble.Spaghetti, error)
	GetStormImpactByID(ctx context.Context, id string) (impact.StormImpact, error)
	ListForecastModelMetadata() []domain.ModelMetadata
	ClearCache()
}

// Server exposes the storm API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        StormService
	format     *formatter
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, svc StormService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// WriteTimeout covers a cold listing, which probes every candidate before responding.
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		format: &formatter{},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/storms", s.handleListStorms)
	mux.HandleFunc("GET /api/storms/near", s.handleListNearStorms)
	mux.HandleFunc("GET /api/storms/{id}", s.handleStormDetails)
	mux.HandleFunc("GET /api/storms/{id}/ensemble", s.handleEnsemble)
	mux.HandleFunc("GET /api/storms/{id}/spaghetti", s.handleSpaghetti)
	mux.HandleFunc("GET /api/storms/{id}/impact", s.handleImpact)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("POST /api/cache/clear", s.handleClearCache)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
