package scraper

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/use-agent/prospects/config"
	"golang.org/x/time/rate"
)

// Throttle is called once before every page fetch.
type Throttle interface {
	Wait(ctx context.Context) error
}

// RandomDelay sleeps a uniformly drawn delay before each fetch and then takes
// a token from a shared limiter, so requests stay spaced when several workers
// run at once. It is safe for concurrent use.
type RandomDelay struct {
	min, max time.Duration
	limiter  *rate.Limiter

	// int64N and sleep are replaced in tests.
	int64N func(n int64) int64
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRandomDelay builds the default throttle from cfg. A non-positive
// RequestsPerSecond leaves only the random delay in place.
func NewRandomDelay(cfg config.ThrottleConfig) *RandomDelay {
	t := &RandomDelay{
		min:    cfg.DelayMin,
		max:    cfg.DelayMax,
		int64N: rand.Int64N,
		sleep:  sleepCtx,
	}
	if t.max < t.min {
		t.max = t.min
	}
	if cfg.RequestsPerSecond > 0 {
		burst := max(cfg.Burst, 1)
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return t
}

// Next draws the next delay from [min, max] at millisecond granularity.
func (t *RandomDelay) Next() time.Duration {
	lo := t.min.Milliseconds()
	span := t.max.Milliseconds() - lo
	if span <= 0 {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+t.int64N(span+1)) * time.Millisecond
}

// Wait blocks for one drawn delay and one limiter token, or until ctx is done.
func (t *RandomDelay) Wait(ctx context.Context) error {
	if err := t.sleep(ctx, t.Next()); err != nil {
		return err
	}
	if t.limiter != nil {
		return t.limiter.Wait(ctx)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
