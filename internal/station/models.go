// Package station provides SaveEcoBot station data access and filtering.
package station

import (
	"errors"
	"strings"
	"time"
)

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("station provider unavailable")
	ErrNoSnapshot          = errors.New("no station snapshot available")
	ErrStationNotFound     = errors.New("station not found")
)

// Pollutant represents a measured substance or metric at a station.
type Pollutant string

const (
	PollutantPM25        Pollutant = "PM2.5"
	PollutantPM10        Pollutant = "PM10"
	PollutantTemperature Pollutant = "Temperature"
	PollutantHumidity    Pollutant = "Humidity"
	PollutantPressure    Pollutant = "Pressure"
	PollutantAQI         Pollutant = "Air Quality Index"
)

// Key returns a short identifier suitable for entity IDs (e.g. "pm2_5").
func (p Pollutant) Key() string {
	key := strings.ToLower(string(p))
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return key
}

// KnownPollutants lists every pollutant this service maps to sensors.
// Readings for anything else are dropped at decode time.
var KnownPollutants = []Pollutant{
	PollutantPM25,
	PollutantPM10,
	PollutantTemperature,
	PollutantHumidity,
	PollutantPressure,
	PollutantAQI,
}

// ParsePollutant returns the known pollutant for a SaveEcoBot "pol" code,
// or false when the code is not mapped.
func ParsePollutant(code string) (Pollutant, bool) {
	for _, p := range KnownPollutants {
		if string(p) == code {
			return p, true
		}
	}
	return "", false
}

// Measurement is a single pollutant reading at a station.
type Measurement struct {
	Pollutant  Pollutant
	Value      float64
	Unit       string
	Averaging  string
	MeasuredAt time.Time
}

// Station is a physical monitoring point with its latest readings.
type Station struct {
	ID           string
	Name         string // street address, SaveEcoBot "stationName"
	LocalName    string
	City         string
	Timezone     string
	Lat          float64
	Lon          float64
	Measurements []Measurement
}

// Slug returns a lowercased identifier combining station ID and city,
// used as the entity unique-ID prefix.
func (s *Station) Slug() string {
	return strings.ToLower(s.ID + "_" + s.City)
}

// Measurement returns the station's reading for a pollutant, if present.
func (s *Station) Measurement(p Pollutant) (Measurement, bool) {
	for _, m := range s.Measurements {
		if m.Pollutant == p {
			return m, true
		}
	}
	return Measurement{}, false
}

// Snapshot is a point-in-time view of the full station list.
// It is replaced wholesale on every successful refresh; station IDs
// are unique within a snapshot.
type Snapshot struct {
	// Stations in source order, as returned by the API.
	Stations []*Station

	// byID indexes stations for direct lookup.
	byID map[string]*Station

	// FetchedAt is when this snapshot was retrieved.
	FetchedAt time.Time
}

// NewSnapshot builds a snapshot from a station list, dropping any
// station whose ID duplicates an earlier one.
func NewSnapshot(stations []*Station) *Snapshot {
	snap := &Snapshot{
		byID:      make(map[string]*Station, len(stations)),
		FetchedAt: time.Now(),
	}
	for _, s := range stations {
		if _, seen := snap.byID[s.ID]; seen {
			continue
		}
		snap.byID[s.ID] = s
		snap.Stations = append(snap.Stations, s)
	}
	return snap
}

// Station looks up a station by ID.
func (s *Snapshot) Station(id string) (*Station, bool) {
	st, ok := s.byID[id]
	return st, ok
}

// Len returns the number of stations in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Stations)
}
