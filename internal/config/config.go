package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client configuration.
type Config struct {
	API       APIConfig
	Retry     RetryConfig
	Breaker   BreakerConfig
	Refresh   RefreshConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// APIConfig holds the upstream API connection settings.
type APIConfig struct {
	BaseURL      string        `envconfig:"HOY_API_BASE_URL" default:"http://localhost:3000/api/v1"`
	Timeout      time.Duration `envconfig:"HOY_API_TIMEOUT" default:"15s"`
	CacheVersion string        `envconfig:"HOY_CACHE_VERSION" default:"1"`
	DeviceInfo   string        `envconfig:"HOY_DEVICE_INFO" default:""`
}

// RetryConfig holds the network-error retry settings.
type RetryConfig struct {
	MaxRetries        int           `envconfig:"HOY_MAX_RETRIES" default:"3"`
	InitialDelay      time.Duration `envconfig:"HOY_INITIAL_RETRY_DELAY" default:"1s"`
	RateLimitFallback time.Duration `envconfig:"HOY_RATE_LIMIT_FALLBACK" default:"5s"`
}

// BreakerConfig holds the per-endpoint circuit breaker settings.
type BreakerConfig struct {
	FailureThreshold int           `envconfig:"HOY_BREAKER_THRESHOLD" default:"5"`
	Window           time.Duration `envconfig:"HOY_BREAKER_WINDOW" default:"60s"`
}

// RefreshConfig holds the token refresh settings.
type RefreshConfig struct {
	// ExpiryThreshold is how close to expiry a token may get before a
	// proactive refresh is attempted.
	ExpiryThreshold time.Duration `envconfig:"HOY_REFRESH_EXPIRY_THRESHOLD" default:"5m"`
	// MinInterval is the minimum gap between proactive refresh attempts.
	MinInterval time.Duration `envconfig:"HOY_REFRESH_MIN_INTERVAL" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"HOY_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"HOY_LOG_DEV" default:"false"`
}

// RateLimitConfig holds outbound request rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"HOY_RATE_LIMIT_RPS" default:"0"`
	Enabled           bool    `envconfig:"HOY_RATE_LIMIT_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:3000/api/v1",
			Timeout:      15 * time.Second,
			CacheVersion: "1",
		},
		Retry: RetryConfig{
			MaxRetries:        3,
			InitialDelay:      time.Second,
			RateLimitFallback: 5 * time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			Window:           60 * time.Second,
		},
		Refresh: RefreshConfig{
			ExpiryThreshold: 5 * time.Minute,
			MinInterval:     30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Enabled:           false,
		},
	}
}
