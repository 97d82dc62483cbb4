package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/interview"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.SaveProfile)

		r.Route("/interview", func(r chi.Router) {
			r.Get("/", h.GetSnapshot)
			r.Delete("/", h.Discard)
			r.Get("/pending", h.Pending)
			r.Post("/start", h.Start)
			r.Put("/draft", h.SetDraft)
			r.Post("/submit", h.Submit)
			r.Post("/pause", h.TogglePause)
		})

		r.Get("/candidates", h.ListCandidates)
		r.Get("/candidates/{id}", h.GetCandidate)
	})
}

// GetProfile returns the stored profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p := h.profiles.Load(r.Context())
	if p == nil {
		Error(w, http.StatusNotFound, "profile_not_found")
		return
	}
	JSON(w, http.StatusOK, p)
}

// SaveProfile validates and stores the profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if !decode(w, r, &p) {
		return
	}
	if !h.profiles.Save(r.Context(), p) {
		Error(w, http.StatusBadRequest, "invalid_profile")
		return
	}
	JSON(w, http.StatusOK, p.Normalized())
}

// GetSnapshot returns the current interview state.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r)
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot(r.Context())
	if snap == nil {
		Error(w, http.StatusNotFound, "no_session")
		return
	}
	JSON(w, http.StatusOK, snap)
}

// Pending reports whether an unfinished interview can be resumed.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]bool{"pending": h.engine.HasUnfinished(r.Context())})
}

type startRequest struct {
	Resume bool `json:"resume"`
}

// Start begins a fresh interview or resumes the pending one.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	err := h.engine.Start(ctx, h.profiles.Load(ctx), req.Resume)
	if errors.Is(err, interview.ErrNoProfile) {
		Error(w, http.StatusConflict, "profile_required")
		return
	}
	if err != nil {
		slog.Error("Failed to start interview", "error", err, "resume", req.Resume)
		Error(w, http.StatusInternalServerError, "failed to start interview")
		return
	}
	h.writeSnapshot(w, r)
}

type answerRequest struct {
	Text string `json:"text"`
}

// SetDraft buffers the in-progress answer.
func (h *Handler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.engine.SetDraft(r.Context(), req.Text); err != nil {
		slog.Error("Failed to save draft", "error", err)
		Error(w, http.StatusInternalServerError, "failed to save draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit records the answer for the current question.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.engine.Submit(r.Context(), req.Text); err != nil {
		slog.Error("Failed to submit answer", "error", err)
		Error(w, http.StatusInternalServerError, "failed to submit answer")
		return
	}
	h.writeSnapshot(w, r)
}

// TogglePause pauses or resumes the countdown.
func (h *Handler) TogglePause(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.TogglePause(r.Context()); err != nil {
		slog.Error("Failed to toggle pause", "error", err)
		Error(w, http.StatusInternalServerError, "failed to toggle pause")
		return
	}
	h.writeSnapshot(w, r)
}

// Discard abandons the current interview.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Discard(r.Context()); err != nil {
		slog.Error("Failed to discard interview", "error", err)
		Error(w, http.StatusInternalServerError, "failed to discard interview")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

// ListCandidates returns completed interviews, filtered by ?q= and ordered by ?sort=.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	JSON(w, http.StatusOK, h.candidates.Query(r.Context(), q.Get("q"), q.Get("sort")))
}

// GetCandidate returns one completed interview.
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c := h.candidates.Get(r.Context(), chi.URLParam(r, "id"))
	if c == nil {
		Error(w, http.StatusNotFound, "candidate_not_found")
		return
	}
	JSON(w, http.StatusOK, c)
}
