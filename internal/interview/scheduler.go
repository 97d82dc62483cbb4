package interview

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs a function repeatedly until cancelled.
type Scheduler interface {
	// Every calls fn once per interval. The returned cancel func must be
	// idempotent and safe to call from within fn.
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs each schedule on its own goroutine driven by a
// time.Ticker. All schedules stop when the parent context is done.
type TickerScheduler struct {
	ctx context.Context
}

// NewTickerScheduler creates a scheduler bound to ctx.
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	return &TickerScheduler{ctx: ctx}
}

// Every starts a ticker goroutine that calls fn at each interval.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		slog.Debug("Countdown started", "interval", interval)

		for {
			select {
			case <-ticker.C:
				// Cancellation may race with a pending tick.
				select {
				case <-stop:
					return
				default:
				}
				fn()
			case <-stop:
				slog.Debug("Countdown cancelled")
				return
			case <-s.ctx.Done():
				slog.Debug("Countdown shutting down", "reason", s.ctx.Err())
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
