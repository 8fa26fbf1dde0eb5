package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yahya-m2000/hoy-go/internal/resilience"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Classification
	}{
		{"no response", 0, Classification{ErrorTypeNetwork, SeverityHigh, true}},
		{"server error", 500, Classification{ErrorTypeServer, SeverityHigh, true}},
		{"bad gateway", 502, Classification{ErrorTypeServer, SeverityHigh, true}},
		{"rate limited", 429, Classification{ErrorTypeRateLimit, SeverityMedium, true}},
		{"unauthorized", 401, Classification{ErrorTypeAuthentication, SeverityMedium, false}},
		{"forbidden", 403, Classification{ErrorTypeAuthorization, SeverityMedium, false}},
		{"not found", 404, Classification{ErrorTypeClient, SeverityLow, false}},
		{"unprocessable", 422, Classification{ErrorTypeClient, SeverityLow, false}},
		{"redirect is unclassified", 302, Classification{ErrorTypeUnknown, SeverityMedium, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.status))
		})
	}
}

func TestCircuitBreakerErrorDiscrimination(t *testing.T) {
	var err error = &CircuitBreakerError{Endpoint: "/properties/123"}

	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)

	var cbe *CircuitBreakerError
	assert.ErrorAs(t, err, &cbe)
	assert.Equal(t, "/properties/123", cbe.Endpoint)
	assert.Contains(t, err.Error(), "/properties/123")
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &APIError{Method: "GET", Endpoint: "/bookings", Class: Classify(0), Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "network")
}
