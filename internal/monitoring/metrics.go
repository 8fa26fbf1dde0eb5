package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics exposed by the client.
type Metrics struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Retry metrics
	RetriesTotal *prometheus.CounterVec

	// Circuit breaker metrics
	BreakerTrips         prometheus.Counter
	BreakerShortCircuits prometheus.Counter

	// Token refresh metrics
	TokenRefreshTotal *prometheus.CounterVec

	// Data integrity metrics
	IntegrityFailures prometheus.Counter
}

// NewMetrics creates a metrics collector registered on reg. A nil reg gets a
// private registry, which keeps repeated construction (tests) collision-free.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoy_client_requests_total",
				Help: "Total number of API requests by method and outcome class",
			},
			[]string{"method", "class"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoy_client_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15},
			},
			[]string{"method"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoy_client_retries_total",
				Help: "Total number of request retries by trigger",
			},
			[]string{"trigger"},
		),
		BreakerTrips: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hoy_client_breaker_trips_total",
				Help: "Total number of circuit breaker open transitions",
			},
		),
		BreakerShortCircuits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hoy_client_breaker_short_circuits_total",
				Help: "Total number of requests rejected pre-flight by an open circuit",
			},
		),
		TokenRefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoy_client_token_refresh_total",
				Help: "Total number of token refresh attempts by result",
			},
			[]string{"result"},
		),
		IntegrityFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hoy_client_integrity_failures_total",
				Help: "Total number of user-data integrity mismatches detected",
			},
		),
	}
}

// RecordRequest records a completed request. status 0 means no response.
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRetry records a retry triggered by the given condition.
func (m *Metrics) RecordRetry(trigger string) {
	if m == nil {
		return
	}
	m.RetriesTotal.WithLabelValues(trigger).Inc()
}

// RecordBreakerTrip records a closed-to-open transition.
func (m *Metrics) RecordBreakerTrip() {
	if m == nil {
		return
	}
	m.BreakerTrips.Inc()
}

// RecordShortCircuit records a pre-flight rejection by an open circuit.
func (m *Metrics) RecordShortCircuit() {
	if m == nil {
		return
	}
	m.BreakerShortCircuits.Inc()
}

// RecordTokenRefresh records a refresh attempt outcome.
func (m *Metrics) RecordTokenRefresh(result string) {
	if m == nil {
		return
	}
	m.TokenRefreshTotal.WithLabelValues(result).Inc()
}

// RecordIntegrityFailure records a user-data integrity mismatch.
func (m *Metrics) RecordIntegrityFailure() {
	if m == nil {
		return
	}
	m.IntegrityFailures.Inc()
}

// statusClass buckets an HTTP status for the requests counter.
func statusClass(status int) string {
	if status <= 0 {
		return "network_error"
	}
	return strconv.Itoa(status/100) + "xx"
}
