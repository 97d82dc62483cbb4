package interview

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerScheduler_CancelFromCallback(t *testing.T) {
	s := NewTickerScheduler(context.Background())

	var calls atomic.Int32
	var cancel func()
	ready := make(chan struct{})
	cancel = s.Every(5*time.Millisecond, func() {
		<-ready
		if calls.Add(1) == 3 {
			cancel()
		}
	})
	close(ready)

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 calls before cancel, got %d", got)
	}
	cancel() // idempotent
}

func TestTickerScheduler_StopsWithContext(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	s := NewTickerScheduler(ctx)

	var calls atomic.Int32
	cancel := s.Every(5*time.Millisecond, func() { calls.Add(1) })
	defer cancel()

	time.Sleep(30 * time.Millisecond)
	stop()
	time.Sleep(20 * time.Millisecond)
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)

	if calls.Load() != after {
		t.Errorf("Expected no calls after context cancel, got %d more", calls.Load()-after)
	}
	if after == 0 {
		t.Error("Expected at least one call before cancel")
	}
}
