package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing key, got %q", got)
	}
}

func TestSQLiteStore_SetOverwritesAndRemove(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte(`"one"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "k", []byte(`"two"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `"two"` {
		t.Errorf("Expected overwritten value, got %q", got)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Removing an absent key should not fail: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if got != nil {
		t.Errorf("Expected nil after remove, got %q", got)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := first.Set(ctx, "profile", []byte(`{"name":"Ada"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Get(ctx, "profile")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"name":"Ada"}` {
		t.Errorf("Expected value to survive reopen, got %q", got)
	}
	if err := second.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
