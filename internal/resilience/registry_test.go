package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessClearsFailures(t *testing.T) {
	registry := NewRegistry(Settings{FailureThreshold: 5, Window: time.Minute})

	for i := 0; i < 4; i++ {
		registry.RecordFailure("/properties/123")
	}
	assert.Equal(t, 4, registry.Failures("/properties/123"))

	registry.RecordSuccess("/properties/123")
	assert.Equal(t, 0, registry.Failures("/properties/123"))
	assert.Equal(t, StateClosed, registry.StateOf("/properties/123"))
}

func TestThresholdTripsCircuit(t *testing.T) {
	registry := NewRegistry(Settings{FailureThreshold: 5, Window: time.Minute})

	// One below threshold: still closed
	for i := 0; i < 4; i++ {
		registry.RecordFailure("/properties/123")
		require.NoError(t, registry.Allow("/properties/123"))
	}

	registry.RecordFailure("/properties/123")
	assert.Equal(t, StateOpen, registry.StateOf("/properties/123"))
	assert.ErrorIs(t, registry.Allow("/properties/123"), ErrCircuitOpen)

	// Unrelated endpoints are unaffected
	require.NoError(t, registry.Allow("/bookings"))
}

func TestWindowExpiryClosesCircuit(t *testing.T) {
	registry := NewRegistry(Settings{FailureThreshold: 5, Window: time.Minute})

	for i := 0; i < 8; i++ {
		registry.RecordFailure("/properties/123")
	}
	assert.ErrorIs(t, registry.Allow("/properties/123"), ErrCircuitOpen)

	// Age the record past the window
	registry.mu.Lock()
	registry.records["/properties/123"].LastFailure = time.Now().Add(-2 * time.Minute)
	registry.mu.Unlock()

	assert.Equal(t, StateClosed, registry.StateOf("/properties/123"))
	require.NoError(t, registry.Allow("/properties/123"))

	// The stale record was pruned wholesale
	assert.Equal(t, 0, registry.Failures("/properties/123"))
}

func TestAuthEndpointsExempt(t *testing.T) {
	registry := NewRegistry(Settings{FailureThreshold: 2, Window: time.Minute})

	exempt := []string{
		"/auth/login",
		"/auth/register",
		"/auth/refresh-token",
		"/auth/forgot-password",
		"/auth/reset-password",
	}

	for _, endpoint := range exempt {
		for i := 0; i < 10; i++ {
			registry.RecordFailure(endpoint)
		}
		assert.Equal(t, 0, registry.Failures(endpoint), endpoint)
		require.NoError(t, registry.Allow(endpoint), endpoint)
		assert.Equal(t, StateClosed, registry.StateOf(endpoint), endpoint)
	}
}

func TestDefaults(t *testing.T) {
	registry := NewRegistry(Settings{})

	assert.Equal(t, 5, registry.settings.FailureThreshold)
	assert.Equal(t, 60*time.Second, registry.settings.Window)
	assert.True(t, registry.Exempt("/auth/login"))
}

func TestOnStateChangeCallback(t *testing.T) {
	var transitions []string
	registry := NewRegistry(Settings{
		FailureThreshold: 2,
		Window:           time.Minute,
		OnStateChange: func(endpoint string, from, to State) {
			transitions = append(transitions, endpoint+":"+from.String()+"->"+to.String())
		},
	})

	registry.RecordFailure("/bookings")
	assert.Empty(t, transitions)

	registry.RecordFailure("/bookings")
	assert.Equal(t, []string{"/bookings:closed->open"}, transitions)

	registry.RecordSuccess("/bookings")
	assert.Equal(t, []string{
		"/bookings:closed->open",
		"/bookings:open->closed",
	}, transitions)
}
