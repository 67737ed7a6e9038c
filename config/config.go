package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Fetch     FetchConfig
	Throttle  ThrottleConfig
	Pipeline  PipelineConfig
}

// FailurePolicy decides what a run does when one player cannot be processed.
type FailurePolicy string

const (
	// FailureAbort stops the run at the first failed player.
	FailureAbort FailurePolicy = "abort"
	// FailureSkip drops the failed player and continues.
	FailureSkip FailurePolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p FailurePolicy) Valid() bool {
	return p == FailureAbort || p == FailureSkip
}

// PipelineConfig controls the per-player extraction pipeline.
type PipelineConfig struct {
	// Progress enables per-player progress reporting.
	Progress bool // default: true

	// StripRedundancy drops name_, position_ and player_url_ from output.
	StripRedundancy bool // default: true

	// FailurePolicy is "abort" or "skip".
	FailurePolicy FailurePolicy // default: "abort"

	// MissingStatsTableFatal turns a page without a statistics table into a
	// parse error instead of a player with zero seasons.
	MissingStatsTableFatal bool // default: false

	// Workers bounds how many players are fetched at once. Output order is
	// always the roster order.
	Workers int // default: 1
}

// ThrottleConfig controls the politeness delay before every page fetch.
type ThrottleConfig struct {
	// DelayMin and DelayMax bound the uniformly drawn pre-fetch delay.
	DelayMin time.Duration // default: 5s
	DelayMax time.Duration // default: 10s

	// RequestsPerSecond caps the sustained request rate across all workers.
	RequestsPerSecond float64 // default: 0.2

	// Burst is the token bucket size for RequestsPerSecond.
	Burst int // default: 1
}

// FetchConfig controls the page fetch engine.
type FetchConfig struct {
	// Timeout is the per-page request deadline.
	Timeout time.Duration // default: 30s

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// UserAgent overrides the Chrome user agent header.
	UserAgent string

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 // default: 10 MiB
}

// CacheConfig controls the assembled-record cache used by the API.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached records.
	MaxEntries int // default: 1000

	// TTL is how long a record may stay cached regardless of max_age.
	TTL time.Duration // default: 1h
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PROSPECTS_HOST", "0.0.0.0"),
			Port: envIntOr("PROSPECTS_PORT", 8080),
			Mode: envOr("PROSPECTS_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PROSPECTS_AUTH_ENABLED", true),
			APIKeys: envSliceOr("PROSPECTS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PROSPECTS_RATE_RPS", 1.0),
			Burst:             envIntOr("PROSPECTS_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PROSPECTS_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("PROSPECTS_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("PROSPECTS_LOG_LEVEL", "info"),
			Format: envOr("PROSPECTS_LOG_FORMAT", "text"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("PROSPECTS_FETCH_TIMEOUT", 30*time.Second),
			Proxy:        os.Getenv("PROSPECTS_PROXY"),
			UserAgent:    os.Getenv("PROSPECTS_USER_AGENT"),
			MaxBodyBytes: int64(envIntOr("PROSPECTS_MAX_BODY_BYTES", 10<<20)),
		},
		Throttle: ThrottleConfig{
			DelayMin:          envDurationOr("PROSPECTS_DELAY_MIN", 5*time.Second),
			DelayMax:          envDurationOr("PROSPECTS_DELAY_MAX", 10*time.Second),
			RequestsPerSecond: envFloatOr("PROSPECTS_THROTTLE_RPS", 0.2),
			Burst:             envIntOr("PROSPECTS_THROTTLE_BURST", 1),
		},
		Pipeline: PipelineConfig{
			Progress:               envBoolOr("PROSPECTS_PROGRESS", true),
			StripRedundancy:        envBoolOr("PROSPECTS_STRIP_REDUNDANCY", true),
			FailurePolicy:          FailurePolicy(envOr("PROSPECTS_FAILURE_POLICY", string(FailureAbort))),
			MissingStatsTableFatal: envBoolOr("PROSPECTS_MISSING_TABLE_FATAL", false),
			Workers:                envIntOr("PROSPECTS_WORKERS", 1),
		},
	}
}

// Validate reports the first configuration value that cannot work.
// The pre-fetch delay may be shortened but never removed.
func (c *Config) Validate() error {
	t := c.Throttle
	if t.DelayMin < 0 {
		return fmt.Errorf("config: delay min must not be negative, got %s", t.DelayMin)
	}
	if t.DelayMax <= 0 {
		return fmt.Errorf("config: delay max must be positive, got %s", t.DelayMax)
	}
	if t.DelayMax < t.DelayMin {
		return fmt.Errorf("config: delay max %s is below delay min %s", t.DelayMax, t.DelayMin)
	}
	if t.Burst < 1 {
		return fmt.Errorf("config: throttle burst must be at least 1, got %d", t.Burst)
	}
	if !c.Pipeline.FailurePolicy.Valid() {
		return fmt.Errorf("config: unknown failure policy %q", c.Pipeline.FailurePolicy)
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Pipeline.Workers)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("config: fetch timeout must be positive, got %s", c.Fetch.Timeout)
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
