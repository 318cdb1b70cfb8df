package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecosense/ecosense/internal/api/models"
	"github.com/ecosense/ecosense/internal/api/response"
	"github.com/ecosense/ecosense/internal/sensor"
	"github.com/ecosense/ecosense/internal/station"
)

// SensorHandler serves sensor entity states.
type SensorHandler struct {
	registry *sensor.Registry
	stations *station.Service
}

// NewSensorHandler creates a new SensorHandler.
func NewSensorHandler(registry *sensor.Registry, stations *station.Service) *SensorHandler {
	return &SensorHandler{registry: registry, stations: stations}
}

// ListSensors handles GET /v1/sensors.
func (h *SensorHandler) ListSensors(w http.ResponseWriter, r *http.Request) {
	entities := h.registry.List()

	list := models.SensorList{
		Items: make([]models.SensorState, 0, len(entities)),
		Count: len(entities),
	}
	for i := range entities {
		list.Items = append(list.Items, toSensorState(&entities[i]))
	}
	response.JSON(w, r, http.StatusOK, list)
}

// GetSensor handles GET /v1/sensors/{uniqueId}.
func (h *SensorHandler) GetSensor(w http.ResponseWriter, r *http.Request) {
	uniqueID := chi.URLParam(r, "uniqueId")

	entity, err := h.registry.Get(uniqueID)
	if err != nil {
		if errors.Is(err, sensor.ErrEntityNotFound) {
			response.NotFound(w, r, "no sensor with id "+uniqueID)
			return
		}
		response.InternalError(w, r, "failed to load sensor")
		return
	}

	response.JSON(w, r, http.StatusOK, toSensorState(&entity))
}

// ListStations handles GET /v1/stations - the current snapshot summary.
func (h *SensorHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	snap, err := h.stations.Snapshot()
	if err != nil {
		response.ServiceUnavailable(w, r, "no station snapshot available")
		return
	}

	list := models.StationList{
		Items:     make([]models.StationSummary, 0, snap.Len()),
		Count:     snap.Len(),
		FetchedAt: models.Timestamp(snap.FetchedAt),
	}
	for _, s := range snap.Stations {
		list.Items = append(list.Items, models.StationSummary{
			ID:    s.ID,
			Name:  s.Name,
			City:  s.City,
			Point: models.Point{Lat: s.Lat, Lon: s.Lon},
		})
	}
	response.JSON(w, r, http.StatusOK, list)
}

func toSensorState(e *sensor.Entity) models.SensorState {
	var state *float64
	if !e.Deprecated {
		v := e.State
		state = &v
	}
	return models.SensorState{
		UniqueID:   e.UniqueID,
		Name:       e.Name,
		StationID:  e.StationID,
		Pollutant:  string(e.Pollutant),
		State:      state,
		Unit:       e.Unit,
		Available:  e.Available,
		Deprecated: e.Deprecated,
		Attributes: models.SensorAttributes{
			City:      e.Attributes.City,
			Address:   e.Attributes.Address,
			LocalName: e.Attributes.LocalName,
			Timezone:  e.Attributes.Timezone,
			Latitude:  e.Attributes.Latitude,
			Longitude: e.Attributes.Longitude,
			Averaging: e.Attributes.Averaging,
			UpdatedAt: models.Timestamp(e.Attributes.UpdatedAt),
		},
	}
}
