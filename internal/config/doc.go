// Package config provides 12-factor configuration management for the Hoy
// API client.
//
// Configuration is loaded from environment variables with sensible defaults;
// the API base URL falls back to a localhost development server.
//
// Configuration Sections:
//   - API: base URL, request timeout, cache version tag, device info
//   - Retry: max retries, initial backoff delay, 429 fallback delay
//   - Breaker: per-endpoint failure threshold and reset window
//   - Refresh: proactive token refresh thresholds
//   - Logging: log level and output format
//   - RateLimit: outbound request rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("API base: %s\n", cfg.API.BaseURL)
//
// Environment Variables:
//   - HOY_API_BASE_URL, HOY_API_TIMEOUT, HOY_CACHE_VERSION, HOY_DEVICE_INFO
//   - HOY_MAX_RETRIES, HOY_INITIAL_RETRY_DELAY, HOY_RATE_LIMIT_FALLBACK
//   - HOY_BREAKER_THRESHOLD, HOY_BREAKER_WINDOW
//   - HOY_REFRESH_EXPIRY_THRESHOLD, HOY_REFRESH_MIN_INTERVAL
//   - HOY_LOG_LEVEL, HOY_LOG_DEV
package config
