package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yahya-m2000/hoy-go/internal/events"
	"github.com/yahya-m2000/hoy-go/internal/logging"
	"github.com/yahya-m2000/hoy-go/internal/monitoring"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

// RefreshPath is the dedicated token refresh endpoint, relative to the API base.
const RefreshPath = "/auth/refresh-token"

var (
	// ErrNoRefreshToken is returned when a refresh is requested but no
	// refresh token is stored. The session is unrecoverable.
	ErrNoRefreshToken = errors.New("auth: no refresh token available")

	// ErrRefreshRejected is returned when the refresh endpoint itself
	// answers 401/403. Tokens are cleared and a logout event is emitted.
	ErrRefreshRejected = errors.New("auth: refresh token rejected")
)

// Config configures a Refresher.
type Config struct {
	BaseURL    string
	DeviceInfo string
	Timeout    time.Duration
	Store      storage.Store
	Bus        *events.Bus
	Logger     *logging.Logger
	Metrics    *monitoring.Metrics
}

// Refresher executes token refreshes against the dedicated endpoint. It uses
// its own HTTP client so a refresh never re-enters the resilient client's
// interceptors, and collapses concurrent refresh demands into a single
// network call.
type Refresher struct {
	baseURL    string
	deviceInfo string
	store      storage.Store
	bus        *events.Bus
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	http       *retryablehttp.Client
	group      singleflight.Group
}

// NewRefresher creates a Refresher.
func NewRefresher(cfg Config) *Refresher {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = 2
	hc.RetryWaitMin = 500 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.HTTPClient.Timeout = cfg.Timeout
	hc.Logger = nil
	// Retry only transport failures. Status codes, 5xx included, must reach
	// the failure taxonomy below untouched.
	hc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}

	return &Refresher{
		baseURL:    cfg.BaseURL,
		deviceInfo: cfg.DeviceInfo,
		store:      cfg.Store,
		bus:        cfg.Bus,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		http:       hc,
	}
}

// Refresh obtains a fresh access token, persists it, and returns it.
// Concurrent callers share one network call and all receive the same
// result. The guarantee is exactly one refresh request per concurrent
// batch of expired-token failures.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		return r.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// AttemptedWithin reports whether a refresh attempt was recorded within d of
// now. Used to rate-limit proactive refreshes.
func (r *Refresher) AttemptedWithin(ctx context.Context, d time.Duration) bool {
	raw, err := storage.GetOrEmpty(ctx, r.store, storage.KeyLastRefreshAttempt)
	if err != nil || raw == "" {
		return false
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return false
	}
	return time.Since(at) < d
}

func (r *Refresher) refresh(ctx context.Context) (string, error) {
	refreshToken, err := storage.GetOrEmpty(ctx, r.store, storage.KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		r.invalidate(ctx, "no refresh token stored")
		return "", ErrNoRefreshToken
	}

	if err := r.store.Set(ctx, storage.KeyLastRefreshAttempt, time.Now().Format(time.RFC3339Nano)); err != nil {
		r.logger.Warn("failed to record refresh attempt", zap.Error(err))
	}

	payload := map[string]string{"refreshToken": refreshToken}
	if r.deviceInfo != "" {
		payload["deviceInfo"] = r.deviceInfo
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode refresh payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+RefreshPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := r.http.Do(req)
	if err != nil {
		// Pure network failure: tokens are kept, the session may recover.
		r.recordFailure(ctx)
		r.metrics.RecordTokenRefresh("network_error")
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		r.recordFailure(ctx)
		r.metrics.RecordTokenRefresh("network_error")
		return "", fmt.Errorf("read refresh response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The refresh token itself is invalid. Terminal.
		r.recordFailure(ctx)
		r.metrics.RecordTokenRefresh("rejected")
		r.invalidate(ctx, fmt.Sprintf("refresh endpoint returned %d", resp.StatusCode))
		return "", ErrRefreshRejected

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Server trouble: treated as transient, tokens retained.
		r.recordFailure(ctx)
		r.metrics.RecordTokenRefresh("server_error")
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	accessToken := gjson.GetBytes(raw, "data.accessToken").String()
	if accessToken == "" {
		r.recordFailure(ctx)
		r.metrics.RecordTokenRefresh("malformed")
		return "", fmt.Errorf("refresh response missing access token")
	}

	if err := r.store.Set(ctx, storage.KeyAccessToken, accessToken); err != nil {
		return "", fmt.Errorf("persist access token: %w", err)
	}
	// A rotated refresh token is optional; keep the old one when absent.
	if next := gjson.GetBytes(raw, "data.refreshToken").String(); next != "" {
		if err := r.store.Set(ctx, storage.KeyRefreshToken, next); err != nil {
			return "", fmt.Errorf("persist refresh token: %w", err)
		}
	}

	now := time.Now().Format(time.RFC3339Nano)
	if err := r.store.Set(ctx, storage.KeyLastRefreshSuccess, now); err != nil {
		r.logger.Warn("failed to record refresh success", zap.Error(err))
	}
	if err := r.store.Set(ctx, storage.KeyTokenRefreshFailCount, "0"); err != nil {
		r.logger.Warn("failed to reset refresh fail count", zap.Error(err))
	}

	r.metrics.RecordTokenRefresh("success")
	r.logger.Debug("access token refreshed")
	return accessToken, nil
}

// recordFailure bumps the persistent failure bookkeeping.
func (r *Refresher) recordFailure(ctx context.Context) {
	now := time.Now().Format(time.RFC3339Nano)
	if err := r.store.Set(ctx, storage.KeyLastRefreshFailure, now); err != nil {
		r.logger.Warn("failed to record refresh failure", zap.Error(err))
	}

	count := 0
	if raw, err := storage.GetOrEmpty(ctx, r.store, storage.KeyTokenRefreshFailCount); err == nil && raw != "" {
		count, _ = strconv.Atoi(raw)
	}
	if err := r.store.Set(ctx, storage.KeyTokenRefreshFailCount, strconv.Itoa(count+1)); err != nil {
		r.logger.Warn("failed to record refresh fail count", zap.Error(err))
	}
}

// invalidate clears the session and broadcasts a forced logout.
func (r *Refresher) invalidate(ctx context.Context, reason string) {
	for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyHasValidAuthentication} {
		if err := r.store.Delete(ctx, key); err != nil {
			r.logger.Warn("failed to clear session key", zap.String("key", key), zap.Error(err))
		}
	}
	if err := r.store.Set(ctx, storage.KeyForceDataReset, "true"); err != nil {
		r.logger.Warn("failed to set force reset flag", zap.Error(err))
	}

	r.logger.Warn("session invalidated", zap.String("reason", reason))
	if r.bus != nil {
		r.bus.Publish(events.Payload{Event: events.AuthLogout, Reason: reason})
	}
}
