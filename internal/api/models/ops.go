package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      Timestamp        `json:"time"`
	Snapshot  SnapshotStatus   `json:"snapshot"`
	Refresh   RefreshStats     `json:"refresh"`
	Providers []ProviderStatus `json:"providers"`
}

// SnapshotStatus describes the current station snapshot.
type SnapshotStatus struct {
	HasData      bool       `json:"hasData"`
	StationCount int        `json:"stationCount"`
	FetchedAt    *Timestamp `json:"fetchedAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
}

// RefreshStats describes the refresh loop's history.
type RefreshStats struct {
	Total         int64      `json:"total"`
	Successful    int64      `json:"successful"`
	Failed        int64      `json:"failed"`
	LastRefreshAt *Timestamp `json:"lastRefreshAt,omitempty"`
	LastDuration  string     `json:"lastDuration,omitempty"`
}

// ProviderStatus represents the status of an upstream provider.
type ProviderStatus struct {
	Provider      string       `json:"provider"`
	Status        HealthStatus `json:"status"`
	CircuitState  string       `json:"circuitState"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       string       `json:"message,omitempty"`
}
