// Package coordinator owns the periodic refresh cycle: fetch, filter,
// map, publish.
package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosense/ecosense/internal/sensor"
	"github.com/ecosense/ecosense/internal/station"
)

// Config holds configuration for the coordinator.
type Config struct {
	// Service owns snapshot fetching.
	Service *station.Service

	// Filter selects the stations whose entities are created at setup.
	Filter station.Filter

	// Interval between refresh ticks (default: 5 minutes).
	Interval time.Duration

	// RefreshTimeout bounds a single refresh operation (default: 60s).
	RefreshTimeout time.Duration

	// Logger for refresh operations.
	Logger zerolog.Logger
}

// Metrics tracks refresh statistics.
type Metrics struct {
	TotalRefreshes      int64
	SuccessfulRefreshes int64
	FailedRefreshes     int64
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
}

// Coordinator drives the refresh cycle. Refreshes run sequentially in
// a single loop goroutine; there is no overlap by construction.
type Coordinator struct {
	service  *station.Service
	filter   station.Filter
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger

	registry *sensor.Registry

	metricsMu sync.RWMutex
	metrics   Metrics
}

// New creates a coordinator. Setup must be called before Run.
func New(cfg Config) *Coordinator {
	interval := cfg.Interval
	if interval == 0 {
		interval = 5 * time.Minute
	}
	timeout := cfg.RefreshTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Coordinator{
		service:  cfg.Service,
		filter:   cfg.Filter,
		interval: interval,
		timeout:  timeout,
		logger:   cfg.Logger,
	}
}

// Setup performs the initial forced fetch and builds the fixed entity
// set from the filtered station list. A configuration matching zero
// stations is logged as a warning, not an error.
func (c *Coordinator) Setup(ctx context.Context) error {
	setupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.service.Refresh(setupCtx, true); err != nil {
		return err
	}

	snap, err := c.service.Snapshot()
	if err != nil {
		return err
	}

	if c.filter.IsEmpty() {
		c.logger.Warn().Msg("no station_ids, city_names or station_names configured; no sensors will be created")
	}

	matched := c.filter.Apply(snap)
	if len(matched) == 0 && !c.filter.IsEmpty() {
		c.logger.Warn().
			Strs("station_ids", c.filter.StationIDs).
			Strs("city_names", c.filter.CityNames).
			Strs("station_names", c.filter.StationNames).
			Msg("configured filter matched zero stations")
	}

	c.registry = sensor.NewRegistry(matched, c.logger)
	return nil
}

// Registry returns the entity registry built by Setup.
func (c *Coordinator) Registry() *sensor.Registry {
	return c.registry
}

// Run refreshes on a fixed interval until the context is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info().
		Dur("interval", c.interval).
		Msg("refresh loop started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("refresh loop stopped")
			return
		case <-ticker.C:
			c.RefreshOnce(ctx, false)
		}
	}
}

// RefreshOnce performs one refresh cycle. A fetch failure marks every
// entity unavailable while keeping last-known values; it never
// propagates out of the cycle.
func (c *Coordinator) RefreshOnce(ctx context.Context, force bool) {
	start := time.Now()

	refreshCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.service.Refresh(refreshCtx, force)
	if err != nil {
		c.registry.MarkUnavailable()
		c.recordRefresh(start, false)
		return
	}

	snap, err := c.service.Snapshot()
	if err != nil {
		c.registry.MarkUnavailable()
		c.recordRefresh(start, false)
		return
	}

	c.registry.Apply(snap)
	c.recordRefresh(start, true)
}

func (c *Coordinator) recordRefresh(start time.Time, ok bool) {
	c.metricsMu.Lock()
	defer c.metricsMu.Unlock()

	c.metrics.TotalRefreshes++
	if ok {
		c.metrics.SuccessfulRefreshes++
	} else {
		c.metrics.FailedRefreshes++
	}
	c.metrics.LastRefreshAt = time.Now()
	c.metrics.LastRefreshDuration = time.Since(start)
}

// MetricsSnapshot returns a copy of the current refresh metrics.
func (c *Coordinator) MetricsSnapshot() Metrics {
	c.metricsMu.RLock()
	defer c.metricsMu.RUnlock()

	return c.metrics
}
