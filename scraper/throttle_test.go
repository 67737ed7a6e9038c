package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/prospects/config"
)

func TestRandomDelay_NextWithinBounds(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: 5 * time.Second, DelayMax: 10 * time.Second})

	for range 200 {
		d := th.Next()
		assert.GreaterOrEqual(t, d, 5*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
		assert.Zero(t, d%time.Millisecond, "millisecond granularity")
	}
}

func TestRandomDelay_NextUsesFullSpan(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: time.Second, DelayMax: 3 * time.Second})

	var gotN int64
	th.int64N = func(n int64) int64 { gotN = n; return n - 1 }
	assert.Equal(t, 3*time.Second, th.Next())
	assert.Equal(t, int64(2001), gotN)

	th.int64N = func(int64) int64 { return 0 }
	assert.Equal(t, time.Second, th.Next())
}

func TestRandomDelay_FixedDelay(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: 250 * time.Millisecond, DelayMax: 250 * time.Millisecond})
	th.int64N = func(int64) int64 { t.Fatal("no draw expected for an empty span"); return 0 }
	assert.Equal(t, 250*time.Millisecond, th.Next())
}

func TestRandomDelay_WaitSleepsDrawnDelay(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: 5 * time.Second, DelayMax: 10 * time.Second})
	th.int64N = func(int64) int64 { return 1500 }

	var slept []time.Duration
	th.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, th.Wait(context.Background()))
	require.NoError(t, th.Wait(context.Background()))
	assert.Equal(t, []time.Duration{6500 * time.Millisecond, 6500 * time.Millisecond}, slept)
	assert.Nil(t, th.limiter)
}

func TestRandomDelay_WaitHonoursCancel(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: time.Hour, DelayMax: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := th.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRandomDelay_LimiterSpacesRequests(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{RequestsPerSecond: 20, Burst: 1})
	require.NotNil(t, th.limiter)

	start := time.Now()
	for range 3 {
		require.NoError(t, th.Wait(context.Background()))
	}
	// The first token is free; the next two wait 50ms each.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRandomDelay_MaxBelowMinIsClamped(t *testing.T) {
	th := NewRandomDelay(config.ThrottleConfig{DelayMin: 2 * time.Second, DelayMax: time.Second})
	assert.Equal(t, 2*time.Second, th.Next())
}
