package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	maxWriteRetries    = 3
	writeRetryBaseWait = 50 * time.Millisecond
)

// isConflictError checks for SQLITE_BUSY or "database is locked" errors,
// both of which warrant a retry.
func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// withRetry runs op, retrying with exponential backoff while the database
// reports lock contention.
func withRetry(ctx context.Context, what string, op func() error) error {
	var err error
	for i := 0; i < maxWriteRetries; i++ {
		err = op()
		if err == nil {
			return nil
		}
		if !isConflictError(err) || i == maxWriteRetries-1 {
			break
		}

		delay := writeRetryBaseWait * time.Duration(1<<i) // 50ms, 100ms
		slog.Debug("Database locked, retrying", "op", what, "attempt", i+1, "delay", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", what, ctx.Err())
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
