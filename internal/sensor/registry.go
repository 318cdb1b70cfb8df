package sensor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosense/ecosense/internal/station"
)

// Registry holds the fixed entity set. Entities are created once from
// the filtered station list at setup; refreshes only mutate their
// values and availability flags. The set never grows or shrinks at
// runtime, even if the remote station list changes.
type Registry struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	entities []*Entity
	byID     map[string]*Entity
}

// NewRegistry builds the entity set from the matched stations.
func NewRegistry(stations []*station.Station, logger zerolog.Logger) *Registry {
	r := &Registry{
		logger: logger,
		byID:   make(map[string]*Entity),
	}

	now := time.Now()
	for _, s := range stations {
		for _, e := range BuildEntities(s, now) {
			if _, dup := r.byID[e.UniqueID]; dup {
				continue
			}
			r.byID[e.UniqueID] = e
			r.entities = append(r.entities, e)
		}
	}

	logger.Info().
		Int("entities", len(r.entities)).
		Int("stations", len(stations)).
		Msg("sensor entity set created")

	return r
}

// Len returns the number of entities in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// List returns a snapshot copy of all entities in creation order.
func (r *Registry) List() []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, *e)
	}
	return out
}

// Get returns a copy of the entity with the given unique ID.
func (r *Registry) Get(uniqueID string) (Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[uniqueID]
	if !ok {
		return Entity{}, ErrEntityNotFound
	}
	return *e, nil
}

// Apply refreshes entity values from a new snapshot. An entity whose
// station or reading is absent from the snapshot keeps its last-known
// value and is marked unavailable.
func (r *Registry) Apply(snap *station.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	updated, missing := 0, 0

	for _, e := range r.entities {
		s, ok := snap.Station(e.StationID)
		if !ok {
			e.Available = false
			missing++
			continue
		}
		m, ok := s.Measurement(e.Pollutant)
		if !ok {
			e.Available = false
			missing++
			continue
		}

		e.State = m.Value
		e.Unit = NormalizeUnit(m.Unit)
		e.Attributes.Averaging = m.Averaging
		e.Attributes.UpdatedAt = m.MeasuredAt
		e.Available = true
		e.Deprecated = now.Sub(m.MeasuredAt) > DeprecationAge
		updated++
	}

	r.logger.Debug().
		Int("updated", updated).
		Int("missing", missing).
		Msg("entity states refreshed")
}

// MarkUnavailable flags every entity unavailable, keeping last-known
// values. Used when a refresh fails.
func (r *Registry) MarkUnavailable() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entities {
		e.Available = false
	}

	r.logger.Warn().
		Int("entities", len(r.entities)).
		Msg("all entities marked unavailable")
}
