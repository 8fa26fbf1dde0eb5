package resilience

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when a request is blocked because its endpoint
// has failed too many times recently.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the derived circuit state for an endpoint.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the failure registry.
type Settings struct {
	// FailureThreshold is the consecutive-failure count at which an
	// endpoint's circuit opens.
	FailureThreshold int
	// Window is how long after the last failure the circuit stays open.
	// A record older than the window is discarded entirely.
	Window time.Duration
	// ExemptPaths lists URL path fragments that are never gated and never
	// recorded, regardless of outcome.
	ExemptPaths []string
	// OnStateChange is called when an endpoint's circuit opens or closes.
	OnStateChange func(endpoint string, from, to State)
}

// Record holds the failure bookkeeping for one endpoint.
type Record struct {
	ConsecutiveFailures int
	LastFailure         time.Time
}

// Registry tracks consecutive failures per endpoint and derives a circuit
// state from them. Authentication endpoints are permanently exempt.
type Registry struct {
	settings Settings

	mu      sync.Mutex
	records map[string]*Record
}

var defaultExemptPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh-token",
	"/auth/forgot-password",
	"/auth/reset-password",
}

// NewRegistry creates a registry with the given settings, applying defaults
// for zero values.
func NewRegistry(settings Settings) *Registry {
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = 5
	}
	if settings.Window <= 0 {
		settings.Window = 60 * time.Second
	}
	if settings.ExemptPaths == nil {
		settings.ExemptPaths = defaultExemptPaths
	}

	return &Registry{
		settings: settings,
		records:  make(map[string]*Record),
	}
}

// Exempt reports whether endpoint belongs to the always-allowed family.
func (r *Registry) Exempt(endpoint string) bool {
	for _, p := range r.settings.ExemptPaths {
		if strings.Contains(endpoint, p) {
			return true
		}
	}
	return false
}

// Allow reports whether a request to endpoint may proceed. It returns
// ErrCircuitOpen when the endpoint's circuit is open. Expired records are
// pruned as a side effect, closing the circuit once the window elapses.
func (r *Registry) Allow(endpoint string) error {
	if r.Exempt(endpoint) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[endpoint]
	if !ok {
		return nil
	}

	if time.Since(rec.LastFailure) > r.settings.Window {
		delete(r.records, endpoint)
		r.notify(endpoint, StateOpen, StateClosed, rec)
		return nil
	}

	if rec.ConsecutiveFailures >= r.settings.FailureThreshold {
		return ErrCircuitOpen
	}
	return nil
}

// RecordFailure increments the failure count for endpoint.
func (r *Registry) RecordFailure(endpoint string) {
	if r.Exempt(endpoint) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[endpoint]
	if !ok {
		rec = &Record{}
		r.records[endpoint] = rec
	}

	wasOpen := rec.ConsecutiveFailures >= r.settings.FailureThreshold
	rec.ConsecutiveFailures++
	rec.LastFailure = time.Now()

	if !wasOpen && rec.ConsecutiveFailures >= r.settings.FailureThreshold {
		if r.settings.OnStateChange != nil {
			r.settings.OnStateChange(endpoint, StateClosed, StateOpen)
		}
	}
}

// RecordSuccess clears the failure record for endpoint.
func (r *Registry) RecordSuccess(endpoint string) {
	if r.Exempt(endpoint) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[endpoint]
	if !ok {
		return
	}
	delete(r.records, endpoint)
	r.notify(endpoint, StateOpen, StateClosed, rec)
}

// StateOf returns the derived circuit state for endpoint.
func (r *Registry) StateOf(endpoint string) State {
	if r.Exempt(endpoint) {
		return StateClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[endpoint]
	if !ok {
		return StateClosed
	}
	if time.Since(rec.LastFailure) > r.settings.Window {
		return StateClosed
	}
	if rec.ConsecutiveFailures >= r.settings.FailureThreshold {
		return StateOpen
	}
	return StateClosed
}

// Failures returns the recorded consecutive-failure count for endpoint.
func (r *Registry) Failures(endpoint string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[endpoint]
	if !ok {
		return 0
	}
	return rec.ConsecutiveFailures
}

// notify fires OnStateChange only for records that had actually tripped.
// Caller must hold r.mu.
func (r *Registry) notify(endpoint string, from, to State, rec *Record) {
	if r.settings.OnStateChange == nil {
		return
	}
	if rec.ConsecutiveFailures >= r.settings.FailureThreshold {
		r.settings.OnStateChange(endpoint, from, to)
	}
}
