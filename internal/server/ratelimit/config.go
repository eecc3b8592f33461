package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/career-recommender/internal/config"
)

// EndpointConfig is the limit applied to one path and method.
type EndpointConfig struct {
	// Path is matched exactly, or as a prefix when it ends in "/".
	Path   string
	Method string
	// Limit is requests per Window; 0 means unlimited.
	Limit  int
	Window time.Duration
	// Burst is the bucket capacity and defaults to Limit.
	Burst int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromSettings converts the decoded rate_limit settings into a limiter Config
// carrying the default endpoint tiers.
func FromSettings(s config.RateLimitConfig) *Config {
	whitelist := make(map[string]bool, len(s.Whitelist))
	for _, ip := range s.Whitelist {
		if ip = strings.TrimSpace(ip); ip != "" {
			whitelist[ip] = true
		}
	}

	return &Config{
		Enabled:         s.Enabled,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		IdleTTL:         time.Hour,
		Whitelist:       whitelist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint tiers. Anything not listed
// falls back to the default limit, and GET /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Strict: rebuilding the snapshot refits every model
		{Path: "/admin/reload", Method: http.MethodPost, Limit: 5, Window: time.Minute, Burst: 1},

		// Moderate: scoring and writes
		{Path: "/recommendations", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/feedback", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
	}
}
