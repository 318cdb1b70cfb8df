package sensor

import (
	"fmt"
	"time"

	"github.com/ecosense/ecosense/internal/station"
)

// DeprecationAge is how old a reading may be before its entity is
// marked deprecated.
const DeprecationAge = 12 * time.Hour

// unitTranslation normalizes SaveEcoBot unit spellings. Unknown units
// pass through verbatim.
var unitTranslation = map[string]string{
	"mg/m3":   "mg/m³",
	"Celcius": "°C",
}

// NormalizeUnit returns the canonical spelling for a reported unit.
func NormalizeUnit(unit string) string {
	if normalized, ok := unitTranslation[unit]; ok {
		return normalized
	}
	return unit
}

// EntityID builds the unique ID for a station/pollutant pair.
func EntityID(s *station.Station, p station.Pollutant) string {
	return s.Slug() + "_" + p.Key()
}

// EntityName builds the friendly name for a station/pollutant pair.
func EntityName(s *station.Station, p station.Pollutant) string {
	return fmt.Sprintf("%s (%s, %s)", p, s.City, s.Name)
}

// BuildEntities maps a station's current readings to sensor entities,
// one per pollutant present. Pollutants without a reading this cycle
// simply produce no entity.
func BuildEntities(s *station.Station, now time.Time) []*Entity {
	entities := make([]*Entity, 0, len(s.Measurements))
	for _, m := range s.Measurements {
		entities = append(entities, buildEntity(s, m, now))
	}
	return entities
}

func buildEntity(s *station.Station, m station.Measurement, now time.Time) *Entity {
	return &Entity{
		UniqueID:  EntityID(s, m.Pollutant),
		Name:      EntityName(s, m.Pollutant),
		StationID: s.ID,
		Pollutant: m.Pollutant,
		State:     m.Value,
		Unit:      NormalizeUnit(m.Unit),
		Attributes: Attributes{
			City:      s.City,
			Address:   s.Name,
			LocalName: s.LocalName,
			Timezone:  s.Timezone,
			Latitude:  s.Lat,
			Longitude: s.Lon,
			Averaging: m.Averaging,
			UpdatedAt: m.MeasuredAt,
		},
		Available:  true,
		Deprecated: now.Sub(m.MeasuredAt) > DeprecationAge,
	}
}
