// Package config loads EcoSense configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ecosense/ecosense/internal/station"
	"github.com/ecosense/ecosense/internal/station/saveecobot"
)

// Config holds the full EcoSense runtime configuration.
type Config struct {
	// Port the HTTP API listens on.
	Port string

	// Environment name (development, staging, production).
	Environment string

	// APIURL is the SaveEcoBot API base URL.
	APIURL string

	// StationIDs, CityNames and StationNames select the stations that
	// get sensor entities. A station matching any set is selected.
	StationIDs   []string
	CityNames    []string
	StationNames []string

	// PollInterval between automatic refreshes.
	PollInterval time.Duration

	// FetchTimeout bounds a single upstream fetch.
	FetchTimeout time.Duration

	// TelemetryEnabled turns on OTLP trace and metric export.
	TelemetryEnabled bool

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string
}

// FromEnv creates a Config from environment variables.
func FromEnv() (Config, error) {
	pollInterval, err := durationOrDefault("ECOSENSE_POLL_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	fetchTimeout, err := durationOrDefault("ECOSENSE_FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		APIURL:           getEnvOrDefault("ECOSENSE_API_URL", saveecobot.DefaultBaseURL),
		StationIDs:       splitList(os.Getenv("ECOSENSE_STATION_IDS")),
		CityNames:        splitList(os.Getenv("ECOSENSE_CITY_NAMES")),
		StationNames:     splitList(os.Getenv("ECOSENSE_STATION_NAMES")),
		PollInterval:     pollInterval,
		FetchTimeout:     fetchTimeout,
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}, nil
}

// Filter returns the station filter described by the configuration.
func (c Config) Filter() station.Filter {
	return station.Filter{
		StationIDs:   c.StationIDs,
		CityNames:    c.CityNames,
		StationNames: c.StationNames,
	}
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty elements.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
