package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.saveecobot.com", cfg.APIURL)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.TelemetryEnabled)
	assert.True(t, cfg.Filter().IsEmpty())
}

func TestFromEnv_FilterLists(t *testing.T) {
	t.Setenv("ECOSENSE_STATION_IDS", "SAVEDNIPRO_1004, SAVEDNIPRO_2001")
	t.Setenv("ECOSENSE_CITY_NAMES", "Kyiv,Lviv, ")
	t.Setenv("ECOSENSE_STATION_NAMES", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	filter := cfg.Filter()
	assert.Equal(t, []string{"SAVEDNIPRO_1004", "SAVEDNIPRO_2001"}, filter.StationIDs)
	assert.Equal(t, []string{"Kyiv", "Lviv"}, filter.CityNames)
	assert.Empty(t, filter.StationNames)
}

func TestFromEnv_PollInterval(t *testing.T) {
	t.Setenv("ECOSENSE_POLL_INTERVAL", "90s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.PollInterval)
}

func TestFromEnv_InvalidPollInterval(t *testing.T) {
	t.Setenv("ECOSENSE_POLL_INTERVAL", "soon")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_NegativePollInterval(t *testing.T) {
	t.Setenv("ECOSENSE_POLL_INTERVAL", "-5m")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_TelemetryEnabled(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.TelemetryEnabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
}
