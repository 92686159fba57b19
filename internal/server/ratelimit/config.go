package ratelimit

import "time"

// EndpointConfig overrides the default limit for one path and method.
type EndpointConfig struct {
	Path      string  // Exact path, or a prefix when it ends in "/"
	Method    string  // Empty matches any method
	Rate      float64 // Requests per second
	Burst     int     // Bucket capacity (defaults to the config burst if 0)
	Unlimited bool
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rate            float64 // Requests per second per client
	Burst           int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused for this long are dropped
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns a config limiting every client to rate requests per
// second with the given burst. A non-positive rate disables limiting.
func NewConfig(rate float64, burst int) *Config {
	if burst <= 0 {
		burst = 1
	}
	return &Config{
		Enabled:         rate > 0,
		Rate:            rate,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: "GET", Unlimited: true},
	}
}
