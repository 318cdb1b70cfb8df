package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health describes the observed health of an upstream provider.
type Health struct {
	// Name is the provider identifier.
	Name string

	// CircuitState is the current circuit breaker state.
	CircuitState gobreaker.State

	// Counts contains circuit breaker statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is the timestamp of the last successful request.
	LastSuccessAt *time.Time

	// LastFailureAt is the timestamp of the last failed request.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// IsHealthy returns true if the provider's circuit is closed.
func (h *Health) IsHealthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// IsDegraded returns true if the provider's circuit is half-open.
func (h *Health) IsDegraded() bool {
	return h.CircuitState == gobreaker.StateHalfOpen
}

// Tracker records success/failure history for provider clients so the
// ops status endpoint can report upstream health.
type Tracker struct {
	mu        sync.RWMutex
	providers map[string]*trackedProvider
}

type trackedProvider struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewTracker creates an empty health tracker.
func NewTracker() *Tracker {
	return &Tracker{
		providers: make(map[string]*trackedProvider),
	}
}

// Track registers a provider client with the tracker.
func (t *Tracker) Track(name string, client *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.providers[name] = &trackedProvider{client: client}
}

// RecordSuccess records a successful request for a provider.
func (t *Tracker) RecordSuccess(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.providers[name]; ok {
		now := time.Now()
		p.lastSuccessAt = &now
	}
}

// RecordFailure records a failed request for a provider.
func (t *Tracker) RecordFailure(name string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.providers[name]; ok {
		now := time.Now()
		p.lastFailureAt = &now
		if err != nil {
			p.lastError = err.Error()
		}
	}
}

// Health returns the health of a tracked provider, or nil if unknown.
func (t *Tracker) Health(name string) *Health {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.providers[name]
	if !ok {
		return nil
	}
	return p.health(name)
}

// All returns the health of every tracked provider.
func (t *Tracker) All() []*Health {
	t.mu.RLock()
	defer t.mu.RUnlock()

	health := make([]*Health, 0, len(t.providers))
	for name, p := range t.providers {
		health = append(health, p.health(name))
	}
	return health
}

func (p *trackedProvider) health(name string) *Health {
	return &Health{
		Name:          name,
		CircuitState:  p.client.BreakerState(),
		Counts:        p.client.BreakerCounts(),
		LastSuccessAt: p.lastSuccessAt,
		LastFailureAt: p.lastFailureAt,
		LastError:     p.lastError,
	}
}
