// Package api provides HTTP handlers for the interview API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ashureev/interview-labs/internal/domain"
)

const maxBodyBytes = 64 << 10

// Engine is the interview state machine driven by the API.
type Engine interface {
	Start(ctx context.Context, profile *domain.Profile, resume bool) error
	TogglePause(ctx context.Context) error
	SetDraft(ctx context.Context, text string) error
	Submit(ctx context.Context, text string) error
	Snapshot(ctx context.Context) *domain.Snapshot
	Discard(ctx context.Context) error
	HasUnfinished(ctx context.Context) bool
}

// Profiles stores the candidate profile.
type Profiles interface {
	Load(ctx context.Context) *domain.Profile
	Save(ctx context.Context, p domain.Profile) bool
}

// Candidates answers ranking queries over completed interviews.
type Candidates interface {
	Query(ctx context.Context, filter, sortBy string) []domain.Candidate
	Get(ctx context.Context, id string) *domain.Candidate
}

// Handler provides the interview, profile and candidate endpoints.
type Handler struct {
	engine     Engine
	profiles   Profiles
	candidates Candidates
}

// NewHandler creates a new Handler with its dependencies.
func NewHandler(engine Engine, profiles Profiles, candidates Candidates) *Handler {
	return &Handler{
		engine:     engine,
		profiles:   profiles,
		candidates: candidates,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}
