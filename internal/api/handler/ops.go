// Package handler provides HTTP handlers for the EcoSense API.
package handler

import (
	"net/http"
	"time"

	"github.com/ecosense/ecosense/internal/api/models"
	"github.com/ecosense/ecosense/internal/api/response"
	"github.com/ecosense/ecosense/internal/coordinator"
	"github.com/ecosense/ecosense/internal/provider/resilience"
	"github.com/ecosense/ecosense/internal/station"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version     string
	buildTime   string
	stations    *station.Service
	coordinator *coordinator.Coordinator
	tracker     *resilience.Tracker
}

// OpsHandlerConfig holds dependencies for the OpsHandler.
type OpsHandlerConfig struct {
	Version     string
	BuildTime   string
	Stations    *station.Service
	Coordinator *coordinator.Coordinator
	Tracker     *resilience.Tracker
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsHandlerConfig) *OpsHandler {
	return &OpsHandler{
		version:     cfg.Version,
		buildTime:   cfg.BuildTime,
		stations:    cfg.Stations,
		coordinator: cfg.Coordinator,
		tracker:     cfg.Tracker,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The
// service is ready once at least one station snapshot has been fetched.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := h.stations.Status()
	if !status.HasSnapshot {
		response.ServiceUnavailable(w, r, "no station snapshot fetched yet")
		return
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - snapshot, refresh, and
// provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	svcStatus := h.stations.Status()
	metrics := h.coordinator.MetricsSnapshot()

	overall := models.HealthStatusOK
	if !svcStatus.HasSnapshot {
		overall = models.HealthStatusFail
	} else if svcStatus.LastError != "" {
		overall = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   models.Timestamp(time.Now()),
		Snapshot: models.SnapshotStatus{
			HasData:      svcStatus.HasSnapshot,
			StationCount: svcStatus.StationCount,
			LastError:    svcStatus.LastError,
		},
		Refresh: models.RefreshStats{
			Total:      metrics.TotalRefreshes,
			Successful: metrics.SuccessfulRefreshes,
			Failed:     metrics.FailedRefreshes,
		},
	}
	if svcStatus.HasSnapshot {
		fetchedAt := models.Timestamp(svcStatus.FetchedAt)
		status.Snapshot.FetchedAt = &fetchedAt
	}
	if !metrics.LastRefreshAt.IsZero() {
		lastAt := models.Timestamp(metrics.LastRefreshAt)
		status.Refresh.LastRefreshAt = &lastAt
		status.Refresh.LastDuration = metrics.LastRefreshDuration.String()
	}

	for _, health := range h.tracker.All() {
		status.Providers = append(status.Providers, providerStatus(health))
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(health *resilience.Health) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:     health.Name,
		Status:       models.HealthStatusOK,
		CircuitState: health.CircuitState.String(),
		Message:      health.LastError,
	}
	if health.IsDegraded() {
		ps.Status = models.HealthStatusDegraded
	} else if !health.IsHealthy() {
		ps.Status = models.HealthStatusFail
	}
	if health.LastSuccessAt != nil {
		ts := models.Timestamp(*health.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if health.LastFailureAt != nil {
		ts := models.Timestamp(*health.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	return ps
}
