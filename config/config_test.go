package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.Throttle.DelayMin)
	assert.Equal(t, 10*time.Second, cfg.Throttle.DelayMax)
	assert.True(t, cfg.Pipeline.Progress)
	assert.True(t, cfg.Pipeline.StripRedundancy)
	assert.Equal(t, FailureAbort, cfg.Pipeline.FailurePolicy)
	assert.False(t, cfg.Pipeline.MissingStatsTableFatal)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROSPECTS_DELAY_MIN", "1500ms")
	t.Setenv("PROSPECTS_DELAY_MAX", "2s")
	t.Setenv("PROSPECTS_FAILURE_POLICY", "skip")
	t.Setenv("PROSPECTS_STRIP_REDUNDANCY", "false")
	t.Setenv("PROSPECTS_API_KEYS", "a, b ,,c")
	t.Setenv("PROSPECTS_WORKERS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 1500*time.Millisecond, cfg.Throttle.DelayMin)
	assert.Equal(t, 2*time.Second, cfg.Throttle.DelayMax)
	assert.Equal(t, FailureSkip, cfg.Pipeline.FailurePolicy)
	assert.False(t, cfg.Pipeline.StripRedundancy)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Auth.APIKeys)
	assert.Equal(t, 1, cfg.Pipeline.Workers, "unparseable values fall back to the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"delay removed", func(c *Config) { c.Throttle.DelayMin, c.Throttle.DelayMax = 0, 0 }, true},
		{"inverted delay", func(c *Config) { c.Throttle.DelayMin = 20 * time.Second }, true},
		{"negative delay", func(c *Config) { c.Throttle.DelayMin = -time.Second }, true},
		{"zero min is allowed", func(c *Config) { c.Throttle.DelayMin = 0 }, false},
		{"unknown policy", func(c *Config) { c.Pipeline.FailurePolicy = "retry" }, true},
		{"no workers", func(c *Config) { c.Pipeline.Workers = 0 }, true},
		{"no burst", func(c *Config) { c.Throttle.Burst = 0 }, true},
		{"no timeout", func(c *Config) { c.Fetch.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile_MergesOverEnv(t *testing.T) {
	t.Setenv("PROSPECTS_PORT", "9090")

	path := filepath.Join(t.TempDir(), "prospects.json5")
	contents := `{
		// comments and trailing commas are fine in JSON5
		throttle: { delay_min: "6s", delay_max: "8s" },
		pipeline: { progress: false, failure_policy: "skip", workers: 2, },
		log: { level: "debug" },
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg := Load()
	require.NoError(t, LoadFile(cfg, path))

	assert.Equal(t, 9090, cfg.Server.Port, "unset file values keep the env value")
	assert.Equal(t, 6*time.Second, cfg.Throttle.DelayMin)
	assert.Equal(t, 8*time.Second, cfg.Throttle.DelayMax)
	assert.False(t, cfg.Pipeline.Progress, "explicit false overrides the default")
	assert.True(t, cfg.Pipeline.StripRedundancy)
	assert.Equal(t, FailureSkip, cfg.Pipeline.FailurePolicy)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := LoadFile(Load(), filepath.Join(dir, "missing.json5"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json5")
	require.NoError(t, os.WriteFile(bad, []byte(`{ throttle: { delay_min: "soon" } }`), 0o600))
	err = LoadFile(Load(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttle.delay_min")
}
