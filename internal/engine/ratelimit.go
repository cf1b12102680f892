package engine

import (
	"context"
	"time"
)

// Limiter paces the scan's outbound requests. Wait blocks until the next
// request may be issued or the context is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a fixed minimum gap between successive Wait
// returns. Combined with the scanner's strictly sequential fetching this
// yields a gentle, predictable request rate.
type IntervalLimiter struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewIntervalLimiter creates a limiter with the given minimum gap.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// newIntervalLimiterWithClock lets tests drive time without real delays.
func newIntervalLimiterWithClock(interval time.Duration, now func() time.Time, sleep func(context.Context, time.Duration) error) *IntervalLimiter {
	return &IntervalLimiter{interval: interval, now: now, sleep: sleep}
}

// Wait returns immediately on the first call, then blocks so that calls
// are at least the configured interval apart.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !l.last.IsZero() {
		if gap := l.interval - l.now().Sub(l.last); gap > 0 {
			if err := l.sleep(ctx, gap); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
