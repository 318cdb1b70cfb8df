package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ecosense/ecosense/internal/api/models"
	"github.com/ecosense/ecosense/internal/api/response"
	"github.com/ecosense/ecosense/internal/coordinator"
	"github.com/ecosense/ecosense/internal/discovery"
	"github.com/ecosense/ecosense/internal/notify"
	"github.com/ecosense/ecosense/internal/station"
)

// Stable notification IDs so repeated service calls replace rather
// than accumulate.
const (
	notificationIDCities       = "ecosense_show_cities"
	notificationIDCityStations = "ecosense_show_city_stations"
)

// ServiceHandler implements the on-demand service calls.
type ServiceHandler struct {
	stations    *station.Service
	coordinator *coordinator.Coordinator
	notifier    *notify.Center
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(stations *station.Service, coord *coordinator.Coordinator, notifier *notify.Center) *ServiceHandler {
	return &ServiceHandler{
		stations:    stations,
		coordinator: coord,
		notifier:    notifier,
	}
}

// ShowCities handles POST /v1/services/show_cities. It renders the
// distinct city list as a persistent notification.
func (h *ServiceHandler) ShowCities(w http.ResponseWriter, r *http.Request) {
	snap, err := h.stations.Snapshot()
	if err != nil {
		response.ServiceUnavailable(w, r, "no station snapshot available")
		return
	}

	cities := discovery.Cities(snap)
	notification := h.notifier.Create(
		notificationIDCities,
		"SaveEcoBot Cities",
		discovery.RenderCities(cities),
	)

	response.JSON(w, r, http.StatusOK, models.ServiceCallResult{
		Notification: toNotification(notification),
	})
}

// ShowCityStations handles POST /v1/services/show_city_stations. The
// body must carry {"city": "<name>"}. An unknown city still produces a
// notification with an explicit empty-result message.
func (h *ServiceHandler) ShowCityStations(w http.ResponseWriter, r *http.Request) {
	var req models.CityStationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if req.City == "" {
		response.BadRequest(w, r, "city is required", []models.FieldError{
			{Field: "city", Message: "must not be empty", Code: "required"},
		})
		return
	}

	snap, err := h.stations.Snapshot()
	if err != nil {
		response.ServiceUnavailable(w, r, "no station snapshot available")
		return
	}

	stations := discovery.CityStations(snap, req.City)
	notification := h.notifier.Create(
		notificationIDCityStations,
		"SaveEcoBot Stations",
		discovery.RenderCityStations(req.City, stations),
	)

	response.JSON(w, r, http.StatusOK, models.ServiceCallResult{
		Notification: toNotification(notification),
	})
}

// Refresh handles POST /v1/services/refresh - a manual forced refresh.
func (h *ServiceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.coordinator.RefreshOnce(r.Context(), true)

	status := h.stations.Status()
	if !status.HasSnapshot {
		response.ServiceUnavailable(w, r, "refresh failed and no previous snapshot exists")
		return
	}

	response.JSON(w, r, http.StatusOK, models.RefreshResult{
		Stations:  status.StationCount,
		FetchedAt: models.Timestamp(status.FetchedAt),
	})
}

func toNotification(n notify.Notification) models.Notification {
	return models.Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: models.Timestamp(n.CreatedAt),
	}
}
