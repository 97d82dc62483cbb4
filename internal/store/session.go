package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ashureev/interview-labs/internal/domain"
)

// SessionKey is the key of the single current-session slot.
const SessionKey = "interview_state"

// SessionStore holds the one current interview session.
type SessionStore struct {
	kv  KV
	key string
}

// NewSessionStore creates a session slot backed by kv.
func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv, key: SessionKey}
}

// Load returns the current session, or nil if there is none or the stored
// value is unreadable or inconsistent.
func (s *SessionStore) Load(ctx context.Context) *domain.Session {
	var session domain.Session
	if !LoadJSON(ctx, s.kv, s.key, &session) {
		return nil
	}
	if !session.Consistent() {
		slog.Warn("discarding inconsistent session", "session_id", session.ID, "index", session.Index)
		return nil
	}
	return &session
}

// Save overwrites the slot with session.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := SaveJSON(ctx, s.kv, s.key, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear empties the slot.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
