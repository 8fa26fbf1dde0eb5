/*
Package client implements the resilient HTTP core of the Hoy API client.

# Overview

Every request flows through a fixed pipeline:

 1. Structural validation (URL present, method recognized)
 2. Connectivity gate — offline requests fail fast, nothing is sent
 3. Circuit breaker gate — endpoints with too many recent consecutive
    failures are rejected pre-flight (auth endpoints are exempt)
 4. Session gate — protected endpoints require a locally recorded valid
    session
 5. Token attachment — the stored access token rides in the Authorization
    header; tokens within five minutes of expiry trigger a proactive
    refresh first (rate-limited, non-blocking on failure)
 6. Execution with two recovery paths:
    401 with an expired/invalid-token body → one coordinated token refresh
    and a single replay; network errors and 429 → bounded retries with
    exponential backoff, honoring Retry-After

GET requests additionally receive cache-busting query parameters and every
request carries the no-cache header triad, defeating intermediate caching of
personalized data.

Responses from the current-user profile endpoint are cross-checked against
the locally stored user ID; a mismatch annotates the payload and records a
persistent integrity flag without failing the call.

# Errors

Callers always receive either a response or a classified error: an APIError
carrying {type, severity, retry}, or one of the pre-flight markers
(CircuitBreakerError, AuthenticationError, ErrMissingURL,
ErrUnsupportedMethod). The classification is advisory; retry behavior is
owned by the pipeline itself.
*/
package client
