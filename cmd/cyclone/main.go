package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cyclone-track-service/internal/adapter/atcf"
	httpadapter "github.com/couchcryptid/cyclone-track-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/cyclone-track-service/internal/adapter/kafka"
	"github.com/couchcryptid/cyclone-track-service/internal/config"
	"github.com/couchcryptid/cyclone-track-service/internal/observability"
	"github.com/couchcryptid/cyclone-track-service/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := atcf.NewClient(cfg.ATCFBaseURL, cfg.ATCFTimeout, metrics, logger)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher tracker.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	svc := tracker.New(client, publisher, tracker.Options{
		Basin:           cfg.ATCFBasin,
		MaxSequence:     cfg.ATCFMaxSequence,
		Concurrency:     cfg.FetchConcurrency,
		CacheTTL:        cfg.CacheTTL,
		ActiveWindow:    cfg.ActiveWindow,
		ProjectLandfall: cfg.LandfallProjectPosition,
		PreferDeckName:  cfg.ATCFPreferDeckName,
		PublishTimeout:  cfg.KafkaPublishTimeout,
	}, logger, metrics, clockwork.NewRealClock())

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Keep the storm list warm.
	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("tracker error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := svc.Close(shutdownCtx); err != nil {
		logger.Error("snapshot publish drain error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
