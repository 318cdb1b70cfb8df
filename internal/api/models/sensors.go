package models

// SensorAttributes carries station and reading metadata for a sensor.
type SensorAttributes struct {
	City      string    `json:"city"`
	Address   string    `json:"address"`
	LocalName string    `json:"local_name"`
	Timezone  string    `json:"timezone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Averaging string    `json:"averaging"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// SensorState is the API representation of one sensor entity. State is
// omitted for deprecated sensors: a reading past the staleness cutoff
// must not be served as a numeric value.
type SensorState struct {
	UniqueID   string           `json:"uniqueId"`
	Name       string           `json:"name"`
	StationID  string           `json:"stationId"`
	Pollutant  string           `json:"pollutant"`
	State      *float64         `json:"state,omitempty"`
	Unit       string           `json:"unit"`
	Available  bool             `json:"available"`
	Deprecated bool             `json:"deprecated"`
	Attributes SensorAttributes `json:"attributes"`
}

// SensorList is the response for the sensor listing endpoint.
type SensorList struct {
	Items []SensorState `json:"items"`
	Count int           `json:"count"`
}

// StationSummary is the API representation of one fetched station.
type StationSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Point Point  `json:"point"`
}

// StationList is the response for the station listing endpoint.
type StationList struct {
	Items     []StationSummary `json:"items"`
	Count     int              `json:"count"`
	FetchedAt Timestamp        `json:"fetchedAt"`
}
