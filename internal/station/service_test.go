package station_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosense/ecosense/internal/station"
)

// mockProvider is a test provider that returns configurable data.
type mockProvider struct {
	stations   []*station.Station
	err        error
	fetchCount atomic.Int32
}

func (m *mockProvider) FetchStations(_ context.Context) ([]*station.Station, error) {
	m.fetchCount.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.stations, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestService_RefreshReplacesSnapshot(t *testing.T) {
	provider := &mockProvider{stations: []*station.Station{{ID: "A", City: "Kyiv"}}}
	svc := station.NewService(station.ServiceConfig{
		Provider: provider,
		Logger:   testLogger(),
	})

	require.NoError(t, svc.Refresh(context.Background(), true))

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())

	provider.stations = []*station.Station{
		{ID: "B", City: "Lviv"},
		{ID: "C", City: "Dnipro"},
	}
	require.NoError(t, svc.Refresh(context.Background(), true))

	snap, err = svc.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())
	_, ok := snap.Station("A")
	assert.False(t, ok, "old snapshot must be fully replaced")
}

func TestService_RefreshCoalescedWithinMinInterval(t *testing.T) {
	provider := &mockProvider{stations: []*station.Station{{ID: "A"}}}
	svc := station.NewService(station.ServiceConfig{
		Provider:           provider,
		Logger:             testLogger(),
		MinRefreshInterval: time.Hour,
	})

	require.NoError(t, svc.Refresh(context.Background(), true))
	require.NoError(t, svc.Refresh(context.Background(), false))
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// Forced refresh always hits the provider.
	require.NoError(t, svc.Refresh(context.Background(), true))
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}

func TestService_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	provider := &mockProvider{stations: []*station.Station{{ID: "A", City: "Kyiv"}}}
	svc := station.NewService(station.ServiceConfig{
		Provider: provider,
		Logger:   testLogger(),
	})

	require.NoError(t, svc.Refresh(context.Background(), true))

	provider.err = errors.New("connection refused")
	err := svc.Refresh(context.Background(), true)
	require.ErrorIs(t, err, station.ErrProviderUnavailable)

	snap, snapErr := svc.Snapshot()
	require.NoError(t, snapErr)
	assert.Equal(t, 1, snap.Len(), "previous snapshot survives a failed refresh")

	status := svc.Status()
	assert.True(t, status.HasSnapshot)
	assert.Contains(t, status.LastError, "connection refused")
	assert.False(t, status.LastFailureAt.IsZero())
}

func TestService_SnapshotBeforeFirstFetch(t *testing.T) {
	svc := station.NewService(station.ServiceConfig{
		Provider: &mockProvider{},
		Logger:   testLogger(),
	})

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, station.ErrNoSnapshot)
	assert.False(t, svc.Status().HasSnapshot)
}

func TestParsePollutant(t *testing.T) {
	p, ok := station.ParsePollutant("PM2.5")
	require.True(t, ok)
	assert.Equal(t, station.PollutantPM25, p)

	_, ok = station.ParsePollutant("CO2")
	assert.False(t, ok)
}

func TestPollutantKey(t *testing.T) {
	assert.Equal(t, "pm2_5", station.PollutantPM25.Key())
	assert.Equal(t, "air_quality_index", station.PollutantAQI.Key())
}

func TestStationSlug(t *testing.T) {
	s := &station.Station{ID: "SAVEDNIPRO_1004", City: "Kyiv"}
	assert.Equal(t, "savednipro_1004_kyiv", s.Slug())
}
