package station

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider fetches the full station list from the upstream API.
type Provider interface {
	FetchStations(ctx context.Context) ([]*Station, error)
}

// ServiceConfig holds configuration for the station service.
type ServiceConfig struct {
	// Provider is the upstream station data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// MinRefreshInterval coalesces refresh bursts: a non-forced refresh
	// within this window of the last successful one is a no-op
	// (default: 30 seconds).
	MinRefreshInterval time.Duration
}

// Service owns the current station snapshot. A successful refresh
// replaces the snapshot wholesale; a failed refresh keeps the previous
// snapshot and records the failure so callers can mark dependent
// sensors unavailable.
type Service struct {
	provider    Provider
	logger      zerolog.Logger
	minInterval time.Duration

	mu            sync.RWMutex
	snapshot      *Snapshot
	lastSuccessAt time.Time
	lastFailureAt time.Time
	lastErr       error
}

// NewService creates a new station service.
func NewService(cfg ServiceConfig) *Service {
	minInterval := cfg.MinRefreshInterval
	if minInterval == 0 {
		minInterval = 30 * time.Second
	}

	return &Service{
		provider:    cfg.Provider,
		logger:      cfg.Logger,
		minInterval: minInterval,
	}
}

// Refresh fetches a fresh snapshot from the provider. When force is
// false and the current snapshot is younger than MinRefreshInterval,
// the call returns immediately without hitting the network.
func (s *Service) Refresh(ctx context.Context, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.snapshot != nil && time.Since(s.lastSuccessAt) < s.minInterval {
		s.logger.Debug().Msg("refresh coalesced, snapshot is recent")
		return nil
	}

	s.logger.Info().Msg("fetching station list from SaveEcoBot")

	stations, err := s.provider.FetchStations(ctx)
	if err != nil {
		s.lastFailureAt = time.Now()
		s.lastErr = err
		s.logger.Error().Err(err).Msg("station fetch failed, keeping previous snapshot")
		return ErrProviderUnavailable
	}

	snap := NewSnapshot(stations)
	s.snapshot = snap
	s.lastSuccessAt = snap.FetchedAt
	s.lastErr = nil

	s.logger.Info().
		Int("stations", snap.Len()).
		Msg("station snapshot refreshed")

	return nil
}

// Snapshot returns the most recent successful snapshot, or ErrNoSnapshot
// when no fetch has succeeded yet.
func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return s.snapshot, nil
}

// Status describes the service's fetch history for ops reporting.
type Status struct {
	HasSnapshot   bool
	StationCount  int
	FetchedAt     time.Time
	LastSuccessAt time.Time
	LastFailureAt time.Time
	LastError     string
}

// Status returns the current fetch status.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		LastSuccessAt: s.lastSuccessAt,
		LastFailureAt: s.lastFailureAt,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.snapshot != nil {
		st.HasSnapshot = true
		st.StationCount = s.snapshot.Len()
		st.FetchedAt = s.snapshot.FetchedAt
	}
	return st
}
