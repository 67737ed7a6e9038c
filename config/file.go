package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// fileConfig is the on-disk JSON5 shape. Durations are Go duration strings
// ("7s", "1m30s"); booleans are pointers so an explicit false is kept.
type fileConfig struct {
	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
		Mode string `json:"mode"`
	} `json:"server"`
	Auth struct {
		Enabled *bool    `json:"enabled"`
		APIKeys []string `json:"api_keys"`
	} `json:"auth"`
	RateLimit struct {
		RequestsPerSecond float64 `json:"requests_per_second"`
		Burst             int     `json:"burst"`
	} `json:"rate_limit"`
	Cache struct {
		MaxEntries int    `json:"max_entries"`
		TTL        string `json:"ttl"`
	} `json:"cache"`
	Log struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"log"`
	Fetch struct {
		Timeout      string `json:"timeout"`
		Proxy        string `json:"proxy"`
		UserAgent    string `json:"user_agent"`
		MaxBodyBytes int64  `json:"max_body_bytes"`
	} `json:"fetch"`
	Throttle struct {
		DelayMin          string  `json:"delay_min"`
		DelayMax          string  `json:"delay_max"`
		RequestsPerSecond float64 `json:"requests_per_second"`
		Burst             int     `json:"burst"`
	} `json:"throttle"`
	Pipeline struct {
		Progress               *bool  `json:"progress"`
		StripRedundancy        *bool  `json:"strip_redundancy"`
		FailurePolicy          string `json:"failure_policy"`
		MissingStatsTableFatal *bool  `json:"missing_stats_table_fatal"`
		Workers                int    `json:"workers"`
	} `json:"pipeline"`
}

// LoadFile reads a JSON5 config file and merges every value it sets over cfg.
// Values absent from the file keep what cfg already holds (env or defaults).
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := json5.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	overlay, err := fc.toConfig()
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if err := mergo.Merge(cfg, overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("config: merge %s: %w", path, err)
	}

	// mergo never overrides with a zero value, so explicit booleans are
	// applied by hand.
	setBool(&cfg.Auth.Enabled, fc.Auth.Enabled)
	setBool(&cfg.Pipeline.Progress, fc.Pipeline.Progress)
	setBool(&cfg.Pipeline.StripRedundancy, fc.Pipeline.StripRedundancy)
	setBool(&cfg.Pipeline.MissingStatsTableFatal, fc.Pipeline.MissingStatsTableFatal)

	slog.Info("merged config file", "path", path)
	return nil
}

func (fc *fileConfig) toConfig() (Config, error) {
	var out Config
	var err error

	out.Server = ServerConfig{Host: fc.Server.Host, Port: fc.Server.Port, Mode: fc.Server.Mode}
	out.Auth.APIKeys = fc.Auth.APIKeys
	out.RateLimit = RateLimitConfig{
		RequestsPerSecond: fc.RateLimit.RequestsPerSecond,
		Burst:             fc.RateLimit.Burst,
	}
	out.Cache.MaxEntries = fc.Cache.MaxEntries
	if out.Cache.TTL, err = parseDuration("cache.ttl", fc.Cache.TTL); err != nil {
		return out, err
	}
	out.Log = LogConfig{Level: fc.Log.Level, Format: fc.Log.Format}

	if out.Fetch.Timeout, err = parseDuration("fetch.timeout", fc.Fetch.Timeout); err != nil {
		return out, err
	}
	out.Fetch.Proxy = fc.Fetch.Proxy
	out.Fetch.UserAgent = fc.Fetch.UserAgent
	out.Fetch.MaxBodyBytes = fc.Fetch.MaxBodyBytes

	if out.Throttle.DelayMin, err = parseDuration("throttle.delay_min", fc.Throttle.DelayMin); err != nil {
		return out, err
	}
	if out.Throttle.DelayMax, err = parseDuration("throttle.delay_max", fc.Throttle.DelayMax); err != nil {
		return out, err
	}
	out.Throttle.RequestsPerSecond = fc.Throttle.RequestsPerSecond
	out.Throttle.Burst = fc.Throttle.Burst

	out.Pipeline.FailurePolicy = FailurePolicy(fc.Pipeline.FailurePolicy)
	out.Pipeline.Workers = fc.Pipeline.Workers
	return out, nil
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
