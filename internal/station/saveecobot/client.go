// Package saveecobot provides a client for the SaveEcoBot public API.
package saveecobot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosense/ecosense/internal/provider/resilience"
	"github.com/ecosense/ecosense/internal/station"
)

const (
	// DefaultBaseURL is the base URL for the SaveEcoBot API.
	DefaultBaseURL = "https://api.saveecobot.com"

	// ProviderName identifies this provider.
	ProviderName = "saveecobot"

	// outputPath is the endpoint serving the full station dump.
	outputPath = "/output.json"
)

// ClientConfig holds configuration for the SaveEcoBot client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 30s; the station
	// dump is a few megabytes).
	Timeout time.Duration

	// Tracker records request outcomes for ops health reporting.
	// Optional.
	Tracker *resilience.Tracker

	// Logger for decode warnings.
	Logger zerolog.Logger
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a SaveEcoBot API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	tracker    *resilience.Tracker
	logger     zerolog.Logger
}

// NewClient creates a new SaveEcoBot client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		resilient := resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
		if cfg.Tracker != nil {
			cfg.Tracker.Track(ProviderName, resilient)
		}
		httpClient = resilient
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		tracker:    cfg.Tracker,
		logger:     cfg.Logger,
	}
}

// API response types (from the SaveEcoBot output.json dump).

type stationData struct {
	ID          string          `json:"id"`
	CityName    string          `json:"cityName"`
	StationName string          `json:"stationName"`
	LocalName   string          `json:"localName"`
	Timezone    string          `json:"timezone"`
	Latitude    flexFloat       `json:"latitude"`
	Longitude   flexFloat       `json:"longitude"`
	Pollutants  []pollutantData `json:"pollutants"`
}

type pollutantData struct {
	Pol       string     `json:"pol"`
	Unit      string     `json:"unit"`
	Time      *flexTime  `json:"time"`
	Value     *flexFloat `json:"value"`
	Averaging string     `json:"averaging"`
}

// flexFloat decodes numbers that the API serves either as JSON numbers
// or as quoted strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexTime decodes timestamps in RFC3339 or the API's
// "2006-01-02 15:04:05" format.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = flexTime(time.Time{})
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// FetchStations retrieves the full station list with latest readings.
func (c *Client) FetchStations(ctx context.Context) ([]*station.Station, error) {
	url := c.baseURL + outputPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("fetch stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d from stations endpoint", resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		err = fmt.Errorf("decode stations response: %w", err)
		c.recordFailure(err)
		return nil, err
	}

	stations := make([]*station.Station, 0, len(records))
	for _, raw := range records {
		var data stationData
		if err := json.Unmarshal(raw, &data); err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed station record")
			continue
		}
		if data.ID == "" {
			c.logger.Warn().Msg("skipping station record without id")
			continue
		}
		stations = append(stations, c.toStation(&data))
	}

	c.recordSuccess()
	return stations, nil
}

// toStation converts API station data to the domain model. Pollutants
// with unknown codes or without a value are dropped here so they never
// surface as sensors.
func (c *Client) toStation(data *stationData) *station.Station {
	measurements := make([]station.Measurement, 0, len(data.Pollutants))
	for _, p := range data.Pollutants {
		pollutant, ok := station.ParsePollutant(p.Pol)
		if !ok {
			c.logger.Debug().
				Str("station_id", data.ID).
				Str("pol", p.Pol).
				Msg("dropping unmapped pollutant")
			continue
		}
		if p.Value == nil {
			continue
		}
		m := station.Measurement{
			Pollutant: pollutant,
			Value:     float64(*p.Value),
			Unit:      p.Unit,
			Averaging: p.Averaging,
		}
		if p.Time != nil {
			m.MeasuredAt = time.Time(*p.Time)
		}
		measurements = append(measurements, m)
	}

	return &station.Station{
		ID:           data.ID,
		Name:         data.StationName,
		LocalName:    data.LocalName,
		City:         data.CityName,
		Timezone:     data.Timezone,
		Lat:          float64(data.Latitude),
		Lon:          float64(data.Longitude),
		Measurements: measurements,
	}
}

func (c *Client) recordSuccess() {
	if c.tracker != nil {
		c.tracker.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.tracker != nil {
		c.tracker.RecordFailure(ProviderName, err)
	}
}
