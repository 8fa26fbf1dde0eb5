package client

import (
	"errors"
	"fmt"

	"github.com/yahya-m2000/hoy-go/internal/resilience"
)

// ErrorType is the coarse error taxonomy used for logging and telemetry.
type ErrorType string

const (
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeServer         ErrorType = "server"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeAuthorization  ErrorType = "authorization"
	ErrorTypeClient         ErrorType = "client"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// Severity grades an error for telemetry.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Classification describes an error for callers and telemetry. Retry is
// advisory; the dedicated retry paths use their own predicates.
type Classification struct {
	Type     ErrorType
	Severity Severity
	Retry    bool
}

// Classify maps an HTTP status to a classification. A status of zero or
// below means no response was received (pure network failure).
func Classify(status int) Classification {
	switch {
	case status <= 0:
		return Classification{Type: ErrorTypeNetwork, Severity: SeverityHigh, Retry: true}
	case status >= 500:
		return Classification{Type: ErrorTypeServer, Severity: SeverityHigh, Retry: true}
	case status == 429:
		return Classification{Type: ErrorTypeRateLimit, Severity: SeverityMedium, Retry: true}
	case status == 401:
		return Classification{Type: ErrorTypeAuthentication, Severity: SeverityMedium, Retry: false}
	case status == 403:
		return Classification{Type: ErrorTypeAuthorization, Severity: SeverityMedium, Retry: false}
	case status >= 400:
		return Classification{Type: ErrorTypeClient, Severity: SeverityLow, Retry: false}
	default:
		return Classification{Type: ErrorTypeUnknown, Severity: SeverityMedium, Retry: false}
	}
}

// Structural validation failures, rejected before any network activity.
var (
	ErrMissingURL        = errors.New("client: request has no URL and client has no base URL")
	ErrUnsupportedMethod = errors.New("client: unsupported HTTP method")
	ErrOffline           = errors.New("client: network unreachable")
)

// APIError is the classified error surfaced to callers for requests that
// failed in flight or after exhausting local handling.
type APIError struct {
	Method   string
	Endpoint string
	Status   int // 0 when no response was received
	Class    Classification
	Body     []byte
	Err      error // underlying cause, may be nil
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Endpoint, e.Class.Type, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Endpoint, e.Class.Type, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Endpoint, e.Class.Type)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *APIError) Unwrap() error { return e.Err }

// CircuitBreakerError marks a request blocked pre-flight by an open circuit.
// No network attempt was made and no failure was recorded.
type CircuitBreakerError struct {
	Endpoint string
}

// Error implements error.
func (e *CircuitBreakerError) Error() string {
	return fmt.Sprintf("circuit breaker open for %s", e.Endpoint)
}

// Unwrap ties the error to the resilience sentinel for errors.Is checks.
func (e *CircuitBreakerError) Unwrap() error { return resilience.ErrCircuitOpen }

// AuthenticationError marks a request blocked pre-flight because no valid
// session is recorded locally.
type AuthenticationError struct {
	Reason string
}

// Error implements error.
func (e *AuthenticationError) Error() string {
	return "authentication required: " + e.Reason
}
