package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles fetches with a shared requests-per-minute budget and an
// optional fixed post-request delay. The budget is shared across all workers,
// not per-worker.
type Limiter struct {
	limiter *rate.Limiter // nil when unlimited
	delay   time.Duration
}

// NewLimiter creates a Limiter allowing perMinute requests per minute
// (0 = unlimited, no bursting) and pausing delay after every request.
func NewLimiter(perMinute int, delay time.Duration) *Limiter {
	var rl *rate.Limiter
	if perMinute > 0 {
		rl = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
	}
	return &Limiter{limiter: rl, delay: delay}
}

// Wait blocks until the rolling per-minute budget allows another request.
// Returns an error if the context is canceled before then.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Pause sleeps the configured fixed delay. Called after every request
// regardless of outcome.
func (l *Limiter) Pause(ctx context.Context) error {
	if l.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(l.delay):
		return nil
	}
}
