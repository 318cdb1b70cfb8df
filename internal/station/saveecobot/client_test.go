package saveecobot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosense/ecosense/internal/station"
	"github.com/ecosense/ecosense/internal/station/saveecobot"
)

const outputFixture = `[
	{
		"id": "SAVEDNIPRO_1004",
		"cityName": "Kyiv",
		"stationName": "vulytsia Henerala Zhmachenka, 4",
		"localName": "Генерала Жмаченка, 4",
		"timezone": "Europe/Kiev",
		"latitude": "50.4547",
		"longitude": "30.6089",
		"pollutants": [
			{"pol": "PM2.5", "unit": "mg/m3", "time": "2024-03-01 10:15:00", "value": "0.0064", "averaging": "2 hours"},
			{"pol": "PM10", "unit": "mg/m3", "time": "2024-03-01 10:15:00", "value": 0.0091, "averaging": "2 hours"},
			{"pol": "Radiation", "unit": "nSv/h", "time": "2024-03-01 10:15:00", "value": "102", "averaging": "2 hours"}
		]
	},
	{
		"id": "SAVEDNIPRO_0017",
		"cityName": "Dnipro",
		"stationName": "prospekt Dmytra Yavornytskoho, 91",
		"localName": "Яворницького, 91",
		"timezone": "Europe/Kiev",
		"latitude": 48.4647,
		"longitude": 35.0462,
		"pollutants": [
			{"pol": "Temperature", "unit": "Celcius", "time": "2024-03-01T10:20:00+02:00", "value": "7.4", "averaging": "2 hours"},
			{"pol": "Humidity", "unit": "%", "time": "2024-03-01T10:20:00+02:00", "value": null, "averaging": "2 hours"}
		]
	},
	{
		"cityName": "Nowhere",
		"stationName": "record without id",
		"pollutants": []
	}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *saveecobot.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return saveecobot.NewClient(saveecobot.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
		Logger:     zerolog.Nop(),
	})
}

func TestClient_FetchStations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/output.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(outputFixture))
	})

	stations, err := client.FetchStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2, "record without id is skipped")

	kyiv := stations[0]
	assert.Equal(t, "SAVEDNIPRO_1004", kyiv.ID)
	assert.Equal(t, "vulytsia Henerala Zhmachenka, 4", kyiv.Name)
	assert.Equal(t, "Kyiv", kyiv.City)
	assert.InDelta(t, 50.4547, kyiv.Lat, 1e-9)
	assert.InDelta(t, 30.6089, kyiv.Lon, 1e-9)

	// Unmapped "Radiation" pollutant is dropped.
	require.Len(t, kyiv.Measurements, 2)
	pm25, ok := kyiv.Measurement(station.PollutantPM25)
	require.True(t, ok)
	assert.InDelta(t, 0.0064, pm25.Value, 1e-9)
	assert.Equal(t, "mg/m3", pm25.Unit)
	assert.Equal(t, "2 hours", pm25.Averaging)
	assert.False(t, pm25.MeasuredAt.IsZero())

	dnipro := stations[1]
	// Null-valued Humidity reading produces no measurement.
	require.Len(t, dnipro.Measurements, 1)
	temp, ok := dnipro.Measurement(station.PollutantTemperature)
	require.True(t, ok)
	assert.InDelta(t, 7.4, temp.Value, 1e-9)
	assert.Equal(t, "Celcius", temp.Unit)
}

func TestClient_FetchStations_Non200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchStations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_FetchStations_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := client.FetchStations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode stations response")
}

func TestClient_FetchStations_SkipsMalformedRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": "OK_1", "cityName": "Kyiv", "stationName": "a", "latitude": 1, "longitude": 2, "pollutants": []},
			{"id": "BAD_1", "cityName": "Kyiv", "stationName": "b", "latitude": "not-a-number", "longitude": 2, "pollutants": []}
		]`))
	})

	stations, err := client.FetchStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "OK_1", stations[0].ID)
}
