// Package interview implements the timed interview session state machine.
//
// An Engine owns the single current session slot. A Scheduler drives Tick
// once per interval; user actions call SetDraft, Submit and TogglePause. The
// final Submit scores the session, records a candidate and stops the
// countdown.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/metrics"
	"github.com/ashureev/interview-labs/internal/scoring"
	"github.com/google/uuid"
)

// ErrNoProfile is returned when a fresh interview is requested without a profile.
var ErrNoProfile = errors.New("no profile to start interview with")

// SessionStore persists the current session.
type SessionStore interface {
	Load(ctx context.Context) *domain.Session
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// CandidateSink records completed interviews.
type CandidateSink interface {
	Append(ctx context.Context, c domain.Candidate) error
}

// Config holds the engine dependencies. Sessions and Candidates are required;
// everything else has a default.
type Config struct {
	Sessions   SessionStore
	Candidates CandidateSink
	Scorer     scoring.Scorer
	Scheduler  Scheduler
	Notifier   Notifier
	Metrics    *metrics.Metrics
	Lineup     domain.Lineup
	Interval   time.Duration
	Now        func() time.Time
	NewID      func() string
}

// Engine is the interview state machine. It is safe for concurrent use.
type Engine struct {
	mu         sync.Mutex
	sessions   SessionStore
	candidates CandidateSink
	scorer     scoring.Scorer
	scheduler  Scheduler
	notifier   Notifier
	metrics    *metrics.Metrics
	lineup     domain.Lineup
	interval   time.Duration
	now        func() time.Time
	newID      func() string

	cancel     func()
	generation uint64 // bumped whenever the countdown is replaced or stopped
	finishedID string // session whose finish has been announced
}

// New creates an engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Candidates == nil {
		return nil, fmt.Errorf("candidate sink is required")
	}

	e := &Engine{
		sessions:   cfg.Sessions,
		candidates: cfg.Candidates,
		scorer:     cfg.Scorer,
		scheduler:  cfg.Scheduler,
		notifier:   cfg.Notifier,
		metrics:    cfg.Metrics,
		lineup:     cfg.Lineup,
		interval:   cfg.Interval,
		now:        cfg.Now,
		newID:      cfg.NewID,
	}
	if e.scorer == nil {
		e.scorer = scoring.NewHeuristic(nil)
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler(context.Background())
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if len(e.lineup.Questions) == 0 {
		e.lineup = domain.DefaultLineup()
	}
	if e.interval <= 0 {
		e.interval = time.Second
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e, nil
}

// run executes fn under the engine lock and delivers the queued events once
// the lock is released.
func (e *Engine) run(fn func() ([]event, error)) error {
	e.mu.Lock()
	events, err := fn()
	e.mu.Unlock()

	for _, ev := range events {
		ev.deliver(e.notifier)
	}
	return err
}

// load returns the persisted session, treating one whose remaining time
// exceeds the current budget as corrupt.
func (e *Engine) load(ctx context.Context) *domain.Session {
	st := e.sessions.Load(ctx)
	if st == nil {
		return nil
	}
	if !st.WithinBudget(e.lineup.Budgets) {
		slog.Warn("Discarding session beyond its time budget", "session_id", st.ID, "index", st.Index, "left", st.Left)
		return nil
	}
	return st
}

func snapshotEvent(s *domain.Session) event {
	snap := s.Snapshot()
	return event{snapshot: &snap}
}

// Start attaches to the persisted unfinished session when resume is true and
// one exists; otherwise it starts a fresh session for profile. Any running
// countdown is replaced.
func (e *Engine) Start(ctx context.Context, profile *domain.Profile, resume bool) error {
	return e.run(func() ([]event, error) {
		st := e.load(ctx)
		mode := metrics.ModeResume

		if !resume || st == nil || st.Finished {
			if profile == nil {
				return nil, ErrNoProfile
			}
			st = e.newSession(*profile)
			if err := e.sessions.Save(ctx, st); err != nil {
				return nil, err
			}
			mode = metrics.ModeFresh
		}

		e.stopCountdown()
		e.generation++
		e.cancel = e.scheduler.Every(e.interval, e.countdown(e.generation))

		e.metrics.SessionStarted(mode)
		slog.Info("Interview started", "session_id", st.ID, "mode", mode, "index", st.Index, "left", st.Left)
		return []event{snapshotEvent(st)}, nil
	})
}

func (e *Engine) newSession(p domain.Profile) *domain.Session {
	order := append([]domain.Question(nil), e.lineup.Questions...)
	return &domain.Session{
		ID:               e.newID(),
		Profile:          p,
		Index:            0,
		Order:            order,
		Left:             e.lineup.Budget(order[0].Difficulty),
		CurrentStartedAt: e.now().UnixMilli(),
		QA:               []domain.AnswerRecord{},
	}
}

// countdown returns the scheduled callback for one countdown generation.
func (e *Engine) countdown(gen uint64) func() {
	return func() {
		if err := e.tick(context.Background(), gen); err != nil {
			slog.Error("Countdown tick failed", "error", err)
		}
	}
}

// stopCountdown cancels the active countdown. Caller must hold e.mu.
func (e *Engine) stopCountdown() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.generation++
}

// Tick advances the countdown by one step.
func (e *Engine) Tick(ctx context.Context) error {
	return e.tick(ctx, 0)
}

// tick advances the countdown. A non-zero gen identifies the scheduled
// countdown that fired; ticks from replaced countdowns are dropped.
func (e *Engine) tick(ctx context.Context, gen uint64) error {
	return e.run(func() ([]event, error) {
		if gen != 0 && gen != e.generation {
			return nil, nil
		}

		st := e.load(ctx)
		if st == nil {
			e.stopCountdown()
			return nil, nil
		}
		if st.Finished {
			e.stopCountdown()
			if e.finishedID == st.ID {
				return nil, nil
			}
			e.finishedID = st.ID
			return []event{e.resultEvent(st, e.summarize(st))}, nil
		}
		if st.Paused {
			return []event{snapshotEvent(st)}, nil
		}

		st.Left = max(0, st.Left-1)
		if err := e.sessions.Save(ctx, st); err != nil {
			return nil, err
		}
		events := []event{snapshotEvent(st)}

		if st.Left == 0 {
			more, err := e.submitLocked(ctx, st, "", metrics.TriggerTimeout)
			events = append(events, more...)
			if err != nil {
				return events, err
			}
		}
		return events, nil
	})
}

// TogglePause flips the paused flag of an unfinished session.
func (e *Engine) TogglePause(ctx context.Context) error {
	return e.run(func() ([]event, error) {
		st := e.load(ctx)
		if st == nil || st.Finished {
			return nil, nil
		}
		st.Paused = !st.Paused
		if err := e.sessions.Save(ctx, st); err != nil {
			return nil, err
		}
		slog.Debug("Interview pause toggled", "session_id", st.ID, "paused", st.Paused)
		return []event{snapshotEvent(st)}, nil
	})
}

// SetDraft buffers text as the in-progress answer, truncated to
// domain.MaxDraftLength characters. It does not touch the countdown.
func (e *Engine) SetDraft(ctx context.Context, text string) error {
	return e.run(func() ([]event, error) {
		st := e.load(ctx)
		if st == nil || st.Finished {
			return nil, nil
		}
		st.Draft = truncate(text, domain.MaxDraftLength)
		if err := e.sessions.Save(ctx, st); err != nil {
			return nil, err
		}
		return []event{snapshotEvent(st)}, nil
	})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Submit records an answer for the current question. Empty text falls back to
// the buffered draft; the chosen answer is trimmed.
func (e *Engine) Submit(ctx context.Context, text string) error {
	return e.run(func() ([]event, error) {
		st := e.load(ctx)
		if st == nil || st.Finished {
			return nil, nil
		}
		return e.submitLocked(ctx, st, text, metrics.TriggerManual)
	})
}

// submitLocked scores the current question and advances the session.
// Caller must hold e.mu and st must be unfinished.
func (e *Engine) submitLocked(ctx context.Context, st *domain.Session, text, trigger string) ([]event, error) {
	q := st.Order[st.Index]
	used := max(0, e.lineup.Budget(q.Difficulty)-st.Left)
	slog.Debug("Submitting answer", "session_id", st.ID, "index", st.Index,
		"trigger", trigger, "elapsed", e.now().Sub(st.StartedAt()))

	answer := text
	if answer == "" {
		answer = st.Draft
	}
	answer = strings.TrimSpace(answer)

	score := e.scorer.Grade(q.Prompt, answer, q.Difficulty)
	st.QA = append(st.QA, domain.AnswerRecord{
		Question:   q.Prompt,
		Answer:     answer,
		Difficulty: q.Difficulty,
		Score:      score,
		TimeUsed:   used,
	})
	st.Index++
	st.Draft = ""

	if st.Index >= len(st.Order) {
		return e.finishLocked(ctx, st, trigger, score)
	}

	next := st.Order[st.Index]
	st.Left = e.lineup.Budget(next.Difficulty)
	st.CurrentStartedAt = e.now().UnixMilli()
	if err := e.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	e.metrics.AnswerRecorded(trigger, score)
	slog.Info("Answer recorded", "session_id", st.ID, "index", st.Index-1, "score", score, "trigger", trigger)
	return []event{snapshotEvent(st)}, nil
}

// finishLocked turns a fully answered session into a candidate. The
// candidate is written before the session so a failed write leaves the
// session unfinished and the submission can be retried. The candidate
// keeps the session ID, so a retry after a failed session save does not
// record it twice.
func (e *Engine) finishLocked(ctx context.Context, st *domain.Session, trigger string, score int) ([]event, error) {
	st.Finished = true
	summary := e.summarize(st)

	c := domain.Candidate{
		ID:        st.ID,
		Name:      st.Profile.Name,
		Email:     st.Profile.Email,
		Phone:     st.Profile.Phone,
		QA:        st.QA,
		Total:     st.Total(),
		Avg:       st.Average(),
		Summary:   summary,
		CreatedAt: e.now().UnixMilli(),
	}
	if err := e.candidates.Append(ctx, c); err != nil {
		return nil, fmt.Errorf("record candidate: %w", err)
	}
	if err := e.sessions.Save(ctx, st); err != nil {
		return nil, err
	}

	e.stopCountdown()
	e.finishedID = st.ID

	e.metrics.AnswerRecorded(trigger, score)
	e.metrics.SessionCompleted()
	slog.Info("Interview finished", "session_id", st.ID, "total", c.Total, "avg", c.Avg)
	return []event{e.resultEvent(st, summary)}, nil
}

func (e *Engine) summarize(st *domain.Session) string {
	return e.scorer.Summarize(st.Profile.Name, st.QA, int(math.Round(st.Average())))
}

func (e *Engine) resultEvent(st *domain.Session, summary string) event {
	return event{result: &domain.Result{
		SessionID: st.ID,
		Total:     st.Total(),
		Avg:       st.Average(),
		Summary:   summary,
	}}
}

// Snapshot returns the current session projection, or nil if there is none.
func (e *Engine) Snapshot(ctx context.Context) *domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.load(ctx)
	if st == nil {
		return nil
	}
	snap := st.Snapshot()
	return &snap
}

// HasUnfinished reports whether a resumable session is persisted.
func (e *Engine) HasUnfinished(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.load(ctx)
	return st != nil && !st.Finished
}

// Discard abandons the current session without recording a candidate.
func (e *Engine) Discard(ctx context.Context) error {
	return e.run(func() ([]event, error) {
		e.stopCountdown()
		if err := e.sessions.Clear(ctx); err != nil {
			return nil, err
		}
		e.metrics.SessionDiscarded()
		slog.Info("Interview discarded")
		return nil, nil
	})
}

// Stop cancels the countdown without touching the persisted session.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopCountdown()
}
