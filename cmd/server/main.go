package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flood-insights-service/internal/adapter/httpapi"
	"github.com/couchcryptid/flood-insights-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/flood-insights-service/internal/config"
	"github.com/couchcryptid/flood-insights-service/internal/domain"
	"github.com/couchcryptid/flood-insights-service/internal/forecast"
	"github.com/couchcryptid/flood-insights-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	classifier, err := domain.NewClassifier(cfg.RiskConfig())
	if err != nil {
		logger.Error("invalid classifier configuration", "error", err)
		os.Exit(1)
	}

	client := openmeteo.NewClient(cfg, metrics, logger)
	geocoder := openmeteo.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)

	svc, err := forecast.NewService(geocoder, client, classifier, forecast.Options{
		RollingShortHours: cfg.RollingShortHours,
		RollingLongHours:  cfg.RollingLongHours,
		Hazards:           cfg.HazardConfig(),
	}, logger, metrics, nil)
	if err != nil {
		logger.Error("invalid forecast service configuration", "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
