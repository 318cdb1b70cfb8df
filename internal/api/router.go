// Package api provides the HTTP API for EcoSense.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ecosense/ecosense/internal/api/handler"
	"github.com/ecosense/ecosense/internal/api/middleware"
	"github.com/ecosense/ecosense/internal/coordinator"
	"github.com/ecosense/ecosense/internal/notify"
	"github.com/ecosense/ecosense/internal/provider/resilience"
	"github.com/ecosense/ecosense/internal/sensor"
	"github.com/ecosense/ecosense/internal/station"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	Metrics     *middleware.Metrics
	Stations    *station.Service
	Registry    *sensor.Registry
	Coordinator *coordinator.Coordinator
	Notifier    *notify.Center
	Tracker     *resilience.Tracker
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(handler.OpsHandlerConfig{
		Version:     cfg.Version,
		BuildTime:   cfg.BuildTime,
		Stations:    cfg.Stations,
		Coordinator: cfg.Coordinator,
		Tracker:     cfg.Tracker,
	})
	sensorHandler := handler.NewSensorHandler(cfg.Registry, cfg.Stations)
	serviceHandler := handler.NewServiceHandler(cfg.Stations, cfg.Coordinator, cfg.Notifier)
	notificationHandler := handler.NewNotificationHandler(cfg.Notifier)

	serviceCallRateLimit := middleware.RateLimitByIP(middleware.ServiceCallRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.Route("/sensors", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", sensorHandler.ListSensors)
			r.Get("/{uniqueId}", sensorHandler.GetSensor)
		})

		r.With(standardRateLimit).Get("/stations", sensorHandler.ListStations)

		r.Route("/services", func(r chi.Router) {
			r.Use(serviceCallRateLimit)
			r.Post("/show_cities", serviceHandler.ShowCities)
			r.Post("/show_city_stations", serviceHandler.ShowCityStations)
			r.Post("/refresh", serviceHandler.Refresh)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", notificationHandler.ListNotifications)
			r.Delete("/{id}", notificationHandler.DismissNotification)
		})
	})

	return r
}
