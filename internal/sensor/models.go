// Package sensor maps station readings onto a fixed set of sensor entities.
package sensor

import (
	"errors"
	"time"

	"github.com/ecosense/ecosense/internal/station"
)

// Registry errors.
var (
	ErrEntityNotFound = errors.New("sensor entity not found")
)

// Attributes carries the descriptive metadata exposed alongside an
// entity's state.
type Attributes struct {
	City      string    `json:"city"`
	Address   string    `json:"address"`
	LocalName string    `json:"local_name"`
	Timezone  string    `json:"timezone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Averaging string    `json:"averaging"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entity is one sensor: a single pollutant at a single station. The
// entity set is built once at setup and only its values are refreshed
// afterwards.
type Entity struct {
	// UniqueID identifies the entity, e.g. "savednipro_1004_kyiv_pm2_5".
	UniqueID string

	// Name is the friendly name, e.g. "PM2.5 (Kyiv, vulytsia Soborna, 1)".
	Name string

	// StationID is the owning station's identifier.
	StationID string

	// Pollutant this entity reports.
	Pollutant station.Pollutant

	// State is the last-known reading.
	State float64

	// Unit is the normalized unit of measurement.
	Unit string

	// Attributes holds station and reading metadata.
	Attributes Attributes

	// Available is false while the last refresh failed; the last-known
	// state is kept but must not be treated as fresh.
	Available bool

	// Deprecated is true when the reading is older than DeprecationAge.
	Deprecated bool
}
