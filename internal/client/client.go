package client

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yahya-m2000/hoy-go/internal/auth"
	"github.com/yahya-m2000/hoy-go/internal/config"
	"github.com/yahya-m2000/hoy-go/internal/events"
	"github.com/yahya-m2000/hoy-go/internal/logging"
	"github.com/yahya-m2000/hoy-go/internal/monitoring"
	"github.com/yahya-m2000/hoy-go/internal/network"
	"github.com/yahya-m2000/hoy-go/internal/resilience"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

// Request describes an outgoing API request. Path is relative to the
// configured base URL.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	Body    any
	// Public marks endpoints that do not require an authenticated session
	// (property search, auth endpoints, password reset).
	Public bool
}

// Response is the wire-level result handed back to service wrappers.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	// Corrupted is set when a profile response failed the user-identity
	// cross-check. The payload is annotated but still delivered.
	Corrupted bool
}

// Client is the resilient HTTP client: token attachment and refresh, retry
// with exponential backoff, per-endpoint circuit breaking, and cache-busting
// for GET requests.
type Client struct {
	resty     *resty.Client
	baseURL   string
	store     storage.Store
	registry  *resilience.Registry
	refresher *auth.Refresher
	monitor   network.Monitor
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	limiter   *rate.Limiter
	bus       *events.Bus

	maxRetries        int
	initialDelay      time.Duration
	rateLimitFallback time.Duration
	refreshThreshold  time.Duration
	refreshInterval   time.Duration
	cacheVersion      string

	// sleep is replaceable in tests to observe and skip backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes a Client.
type Option func(*Client)

// WithStore sets the key-value store backing session state.
func WithStore(s storage.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithMonitor sets the connectivity probe.
func WithMonitor(m network.Monitor) Option {
	return func(c *Client) { c.monitor = m }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRefresher replaces the token refresher. Mostly useful in tests.
func WithRefresher(r *auth.Refresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithBus routes forced-logout events to bus (via the default refresher).
func WithBus(b *events.Bus) Option {
	return func(c *Client) { c.bus = b }
}

// New creates a resilient client from cfg.
func New(cfg *config.Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Client{
		baseURL:           cfg.API.BaseURL,
		logger:            logging.NewNop(),
		limiter:           rate.NewLimiter(rate.Inf, 0),
		maxRetries:        cfg.Retry.MaxRetries,
		initialDelay:      cfg.Retry.InitialDelay,
		rateLimitFallback: cfg.Retry.RateLimitFallback,
		refreshThreshold:  cfg.Refresh.ExpiryThreshold,
		refreshInterval:   cfg.Refresh.MinInterval,
		cacheVersion:      cfg.API.CacheVersion,
	}
	c.sleep = defaultSleep

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = storage.NewMemory()
	}
	if c.monitor == nil {
		c.monitor = network.Static(true)
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerSecond > 0 {
		rps := cfg.RateLimit.RequestsPerSecond
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}

	c.registry = resilience.NewRegistry(resilience.Settings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Window:           cfg.Breaker.Window,
		OnStateChange: func(endpoint string, from, to resilience.State) {
			c.logger.Warn("circuit state change",
				zap.String("endpoint", endpoint),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if to == resilience.StateOpen {
				c.metrics.RecordBreakerTrip()
			}
		},
	})

	if c.refresher == nil {
		c.refresher = auth.NewRefresher(auth.Config{
			BaseURL:    cfg.API.BaseURL,
			DeviceInfo: cfg.API.DeviceInfo,
			Timeout:    cfg.API.Timeout,
			Store:      c.store,
			Bus:        c.bus,
			Logger:     c.logger,
			Metrics:    c.metrics,
		})
	}

	c.resty = resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("User-Agent", "hoy-go/1.0").
		// No-cache triad on every request; personalized data must not be
		// served from intermediate HTTP/CDN caches.
		SetHeader("Cache-Control", "no-cache, no-store, must-revalidate").
		SetHeader("Pragma", "no-cache").
		SetHeader("Expires", "0").
		SetRetryCount(0) // retry policy is owned by Do, not resty

	c.resty.OnBeforeRequest(c.cacheBust)

	return c
}

// cacheBust appends the cache-defeating query parameters to GET requests:
// a timestamp, the cache version tag, a truncated user-id fragment, and a
// random nonce.
func (c *Client) cacheBust(_ *resty.Client, req *resty.Request) error {
	if req.Method != http.MethodGet {
		return nil
	}

	req.SetQueryParam("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	req.SetQueryParam("_v", c.cacheVersion)
	if userID, err := storage.GetOrEmpty(req.Context(), c.store, storage.KeyCurrentUserID); err == nil && userID != "" {
		req.SetQueryParam("_u", truncateID(userID))
	}
	req.SetQueryParam("_r", uuid.NewString()[:8])
	return nil
}

// truncateID returns a short fragment of a user ID, enough to partition
// caches without leaking the full identifier into URLs.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, req *Request) (*Response, error) {
	req.Method = http.MethodGet
	return c.Do(ctx, req)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, req *Request) (*Response, error) {
	req.Method = http.MethodPost
	return c.Do(ctx, req)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, req *Request) (*Response, error) {
	req.Method = http.MethodPut
	return c.Do(ctx, req)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, req *Request) (*Response, error) {
	req.Method = http.MethodPatch
	return c.Do(ctx, req)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, req *Request) (*Response, error) {
	req.Method = http.MethodDelete
	return c.Do(ctx, req)
}

// Registry exposes the circuit breaker registry for inspection.
func (c *Client) Registry() *resilience.Registry {
	return c.registry
}

// defaultSleep waits for d or until ctx is cancelled, whichever comes first.
func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
