package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/yahya-m2000/hoy-go/internal/auth"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Do executes req through the full pipeline: structural validation,
// connectivity and circuit gates, token attachment with proactive refresh,
// then the 401-refresh and network/429 retry paths. Every call either
// returns a usable response or a classified error; it never does both and
// never hangs past timeout × (retries + 1).
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if !allowedMethods[req.Method] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
	if req.Path == "" && c.baseURL == "" {
		return nil, ErrMissingURL
	}

	endpoint := endpointKey(req.Path)

	// Fail fast while offline; nothing is transmitted.
	if !c.monitor.Online(ctx) {
		return nil, &APIError{Method: req.Method, Endpoint: endpoint, Class: Classify(0), Err: ErrOffline}
	}

	// Circuit gate. Rejection makes no network attempt and records nothing.
	if err := c.registry.Allow(endpoint); err != nil {
		c.metrics.RecordShortCircuit()
		return nil, &CircuitBreakerError{Endpoint: endpoint}
	}

	authExempt := c.registry.Exempt(endpoint)

	// Session gate for protected endpoints.
	if !req.Public && !authExempt {
		flag, err := storage.GetOrEmpty(ctx, c.store, storage.KeyHasValidAuthentication)
		if err != nil {
			return nil, fmt.Errorf("read session flag: %w", err)
		}
		if flag != "true" {
			return nil, &AuthenticationError{Reason: "no valid session recorded"}
		}
	}

	token, err := storage.GetOrEmpty(ctx, c.store, storage.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	// Proactive refresh: a token close to expiry is swapped before the
	// request goes out. Failure is non-blocking; the stale token rides
	// along and may still be accepted, or fall through to the 401 path.
	if token != "" && !authExempt &&
		auth.ExpiringWithin(token, c.refreshThreshold) &&
		!c.refresher.AttemptedWithin(ctx, c.refreshInterval) {
		if fresh, rerr := c.refresher.Refresh(ctx); rerr == nil {
			token = fresh
		} else {
			c.logger.Debug("proactive refresh failed, proceeding with stale token", zap.Error(rerr))
		}
	}

	retriedAuth := false
	retries := 0

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		start := time.Now()
		resp, err := c.attempt(ctx, req, token)
		c.metrics.RecordRequest(req.Method, statusOf(resp), time.Since(start))

		if err != nil {
			// No response at all: pure network failure.
			c.registry.RecordFailure(endpoint)

			if retries >= c.maxRetries {
				return nil, &APIError{Method: req.Method, Endpoint: endpoint, Class: Classify(0), Err: err}
			}
			if !c.monitor.Online(ctx) {
				return nil, &APIError{Method: req.Method, Endpoint: endpoint, Class: Classify(0), Err: ErrOffline}
			}

			delay := c.backoff(retries)
			c.metrics.RecordRetry("network")
			c.logger.Warn("network error, retrying",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", retries+1),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
			retries++
			continue
		}

		status := resp.StatusCode()
		switch {
		case status >= 200 && status < 300:
			c.registry.RecordSuccess(endpoint)
			body, corrupted := c.checkIntegrity(ctx, endpoint, resp.Body())
			return &Response{
				StatusCode: status,
				Body:       body,
				Headers:    resp.Header(),
				Corrupted:  corrupted,
			}, nil

		case status == http.StatusUnauthorized && !retriedAuth && !authExempt && tokenProblem(resp.Body()):
			fresh, rerr := c.refresher.Refresh(ctx)
			if rerr != nil {
				return nil, &APIError{
					Method:   req.Method,
					Endpoint: endpoint,
					Status:   status,
					Class:    Classify(status),
					Body:     resp.Body(),
					Err:      rerr,
				}
			}
			token = fresh
			retriedAuth = true
			continue

		case status == http.StatusTooManyRequests:
			if retries >= c.maxRetries {
				return nil, &APIError{Method: req.Method, Endpoint: endpoint, Status: status, Class: Classify(status), Body: resp.Body()}
			}

			delay := retryAfter(resp, c.rateLimitFallback)
			c.metrics.RecordRetry("rate_limit")
			c.logger.Warn("rate limited, retrying",
				zap.String("endpoint", endpoint),
				zap.Duration("delay", delay),
			)
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
			retries++
			continue

		default:
			if status >= 500 {
				c.registry.RecordFailure(endpoint)
			}
			return nil, &APIError{Method: req.Method, Endpoint: endpoint, Status: status, Class: Classify(status), Body: resp.Body()}
		}
	}
}

// attempt builds and executes a single resty request. A fresh request per
// attempt keeps replays clean (new cache-bust nonce, current token).
func (c *Client) attempt(ctx context.Context, req *Request, token string) (*resty.Response, error) {
	r := c.resty.R().SetContext(ctx)

	for k, v := range req.Query {
		r.SetQueryParam(k, v)
	}
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(req.Body)
	}
	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}

	return r.Execute(req.Method, req.Path)
}

// backoff returns the delay before retry number attempt (0-based):
// initialDelay × 2^attempt.
func (c *Client) backoff(attempt int) time.Duration {
	return c.initialDelay << attempt
}

// endpointKey strips the query string so cache-busting parameters do not
// fragment the failure records.
func endpointKey(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

// tokenProblem reports whether a 401 body indicates an expired or invalid
// access token, as opposed to, say, bad credentials on login.
func tokenProblem(body []byte) bool {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	m := strings.ToLower(msg)
	return strings.Contains(m, "expired") || strings.Contains(m, "invalid token") || strings.Contains(m, "jwt")
}

// retryAfter reads a Retry-After header in seconds, falling back when the
// header is absent or unparseable.
func retryAfter(resp *resty.Response, fallback time.Duration) time.Duration {
	raw := resp.Header().Get("Retry-After")
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// statusOf is a nil-safe status accessor for metrics.
func statusOf(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
