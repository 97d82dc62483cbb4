// Package profile persists the candidate profile used to start interviews.
package profile

import (
	"context"
	"log/slog"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/store"
)

// ProfileKey is the key of the stored profile.
const ProfileKey = "profile"

// Store holds the single candidate profile.
type Store struct {
	kv store.KV
}

// NewStore creates a profile store backed by kv.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored profile, or nil if none is stored.
func (s *Store) Load(ctx context.Context) *domain.Profile {
	var p domain.Profile
	if !store.LoadJSON(ctx, s.kv, ProfileKey, &p) {
		return nil
	}
	return &p
}

// Save validates and stores p. It returns false if p is invalid or could not
// be written; the caller should ask for the profile again.
func (s *Store) Save(ctx context.Context, p domain.Profile) bool {
	if !p.Valid() {
		return false
	}
	if err := store.SaveJSON(ctx, s.kv, ProfileKey, p.Normalized()); err != nil {
		slog.Error("failed to save profile", "error", err)
		return false
	}
	return true
}
