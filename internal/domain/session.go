package domain

import (
	"time"
	"unicode/utf8"
)

// MaxDraftLength is the maximum number of characters kept in a draft.
const MaxDraftLength = 4000

// AnswerRecord is one scored question/answer pair.
type AnswerRecord struct {
	Question   string     `json:"q"`
	Answer     string     `json:"a"`
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
	TimeUsed   int        `json:"timeUsed"`
}

// Session is the persisted state of the interview in progress.
type Session struct {
	ID               string         `json:"id"`
	Profile          Profile        `json:"profile"`
	Index            int            `json:"index"`
	Order            []Question     `json:"order"`
	Left             int            `json:"left"`
	CurrentStartedAt int64          `json:"currentStartedAt"`
	Paused           bool           `json:"paused"`
	Draft            string         `json:"draft"`
	QA               []AnswerRecord `json:"qa"`
	Finished         bool           `json:"finished"`
}

// Current returns the question being answered, or nil once all are answered.
func (s *Session) Current() *Question {
	if s.Index < 0 || s.Index >= len(s.Order) {
		return nil
	}
	q := s.Order[s.Index]
	return &q
}

// StartedAt returns the time the current question was presented.
func (s *Session) StartedAt() time.Time {
	return time.UnixMilli(s.CurrentStartedAt)
}

// Total returns the sum of all recorded scores.
func (s *Session) Total() int {
	total := 0
	for _, r := range s.QA {
		total += r.Score
	}
	return total
}

// Average returns the mean score over the recorded answers.
// Returns 0 if nothing has been answered yet.
func (s *Session) Average() float64 {
	if len(s.QA) == 0 {
		return 0
	}
	return float64(s.Total()) / float64(len(s.QA))
}

// Consistent reports whether the session satisfies its structural invariants.
// Persisted sessions that fail this check are treated as corrupt.
func (s *Session) Consistent() bool {
	if s.ID == "" || len(s.Order) == 0 {
		return false
	}
	if s.Index < 0 || s.Index > len(s.Order) || len(s.QA) != s.Index {
		return false
	}
	if s.Finished != (s.Index == len(s.Order)) {
		return false
	}
	if s.Left < 0 || utf8.RuneCountInString(s.Draft) > MaxDraftLength {
		return false
	}
	return true
}

// WithinBudget reports whether the remaining time of an unfinished session
// fits the budget of its current question. Tiers missing from budgets have
// no allowance.
func (s *Session) WithinBudget(budgets map[Difficulty]int) bool {
	q := s.Current()
	if s.Finished || q == nil {
		return true
	}
	return s.Left <= budgets[q.Difficulty]
}

// Snapshot is a read-only projection of a session for display.
type Snapshot struct {
	ID        string    `json:"id"`
	Index     int       `json:"index"`
	Questions int       `json:"questions"`
	Current   *Question `json:"current,omitempty"`
	Left      int       `json:"left"`
	Paused    bool      `json:"paused"`
	Draft     string    `json:"draft"`
	Finished  bool      `json:"finished"`
}

// Snapshot projects the session for rendering.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Index:     s.Index,
		Questions: len(s.Order),
		Current:   s.Current(),
		Left:      s.Left,
		Paused:    s.Paused,
		Draft:     s.Draft,
		Finished:  s.Finished,
	}
}

// Result is delivered once when a session finishes.
type Result struct {
	SessionID string  `json:"sessionId"`
	Total     int     `json:"total"`
	Avg       float64 `json:"avg"`
	Summary   string  `json:"summary"`
}
