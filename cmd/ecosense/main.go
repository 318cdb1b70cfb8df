// Package main provides the entrypoint for the EcoSense server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosense/ecosense/internal/api"
	"github.com/ecosense/ecosense/internal/api/middleware"
	"github.com/ecosense/ecosense/internal/config"
	"github.com/ecosense/ecosense/internal/coordinator"
	"github.com/ecosense/ecosense/internal/notify"
	"github.com/ecosense/ecosense/internal/provider/resilience"
	"github.com/ecosense/ecosense/internal/station"
	"github.com/ecosense/ecosense/internal/station/saveecobot"
	"github.com/ecosense/ecosense/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "ecosense"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting EcoSense")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Wire the SaveEcoBot provider behind the resilient client
	tracker := resilience.NewTracker()
	provider := saveecobot.NewClient(saveecobot.ClientConfig{
		BaseURL: cfg.APIURL,
		Timeout: cfg.FetchTimeout,
		Tracker: tracker,
		Logger:  log,
	})

	stationService := station.NewService(station.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})

	coord := coordinator.New(coordinator.Config{
		Service:  stationService,
		Filter:   cfg.Filter(),
		Interval: cfg.PollInterval,
		Logger:   log,
	})

	// The initial fetch must succeed; without a snapshot there is
	// nothing to serve.
	if err := coord.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial station fetch failed")
	}
	log.Info().
		Int("sensors", len(coord.Registry().List())).
		Msg("sensor entities created")

	// Start the refresh loop
	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go coord.Run(loopCtx)

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		Metrics:     metrics,
		Stations:    stationService,
		Registry:    coord.Registry(),
		Coordinator: coord,
		Notifier:    notify.NewCenter(log),
		Tracker:     tracker,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopLoop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
