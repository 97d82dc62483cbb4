package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// ReadJSON decodes the value under key into v. It reports false with a nil
// error when the key is absent or the value does not decode. A failed read
// is returned as an error so callers never mistake it for an empty slot.
func ReadJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("discarding malformed value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// LoadJSON is ReadJSON for read-only callers: read failures are logged and
// reported like an absent key.
func LoadJSON(ctx context.Context, kv KV, key string, v any) bool {
	ok, err := ReadJSON(ctx, kv, key, v)
	if err != nil {
		slog.Warn("failed to read key", "key", key, "error", err)
		return false
	}
	return ok
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
