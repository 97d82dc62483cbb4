package domain

import (
	"strings"
	"testing"
)

func finishedSession() *Session {
	lineup := DefaultLineup()
	s := &Session{ID: "s1", Order: lineup.Questions}
	for i, q := range lineup.Questions {
		s.QA = append(s.QA, AnswerRecord{Question: q.Prompt, Difficulty: q.Difficulty, Score: 10 + i})
	}
	s.Index = len(s.Order)
	s.Finished = true
	return s
}

func TestSession_CurrentAndTotals(t *testing.T) {
	s := finishedSession()
	if s.Current() != nil {
		t.Error("Expected no current question once all are answered")
	}
	if s.Total() != 75 {
		t.Errorf("Expected total 75, got %d", s.Total())
	}
	if s.Average() != 12.5 {
		t.Errorf("Expected average 12.5, got %v", s.Average())
	}

	fresh := &Session{ID: "s2", Order: DefaultLineup().Questions, Left: 20}
	if q := fresh.Current(); q == nil || q.Difficulty != DifficultyEasy {
		t.Errorf("Expected first easy question, got %+v", q)
	}
	if fresh.Average() != 0 {
		t.Errorf("Expected zero average without answers, got %v", fresh.Average())
	}
}

func TestSession_Consistent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Session)
		want   bool
	}{
		{"finished", func(*Session) {}, true},
		{"missing id", func(s *Session) { s.ID = "" }, false},
		{"finished flag without all answers", func(s *Session) { s.Index = 5; s.QA = s.QA[:5] }, false},
		{"answers out of step with index", func(s *Session) { s.QA = s.QA[:4] }, false},
		{"negative time", func(s *Session) { s.Left = -1 }, false},
		{"oversized draft", func(s *Session) { s.Draft = strings.Repeat("x", MaxDraftLength+1) }, false},
		{"in progress", func(s *Session) { s.Index = 5; s.QA = s.QA[:5]; s.Finished = false }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := finishedSession()
			tt.mutate(s)
			if got := s.Consistent(); got != tt.want {
				t.Errorf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_Snapshot(t *testing.T) {
	s := &Session{ID: "s3", Order: DefaultLineup().Questions, Index: 1, Left: 7, Paused: true, Draft: "wip",
		QA: []AnswerRecord{{Score: 9}}}
	snap := s.Snapshot()
	if snap.Questions != 6 || snap.Index != 1 || snap.Left != 7 || !snap.Paused || snap.Draft != "wip" {
		t.Errorf("Unexpected snapshot %+v", snap)
	}
	if snap.Current == nil || snap.Current.Prompt != s.Order[1].Prompt {
		t.Errorf("Expected second question, got %+v", snap.Current)
	}
}

func TestProfile_Valid(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		want bool
	}{
		{"valid", Profile{Name: "Ada", Email: "ada@example.com", Phone: "+1 555 123 4567"}, true},
		{"blank name", Profile{Name: "  ", Email: "ada@example.com", Phone: "5551234567"}, false},
		{"bad email", Profile{Name: "Ada", Email: "ada@example", Phone: "5551234567"}, false},
		{"short phone", Profile{Name: "Ada", Email: "ada@example.com", Phone: "12345"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_WithinBudget(t *testing.T) {
	budgets := DefaultBudgets()
	s := &Session{ID: "s4", Order: DefaultLineup().Questions, Left: 20}
	if !s.WithinBudget(budgets) {
		t.Error("Expected full easy budget to fit")
	}
	s.Left = 21
	if s.WithinBudget(budgets) {
		t.Error("Expected 21s on an easy question to exceed the budget")
	}
	if !finishedSession().WithinBudget(budgets) {
		t.Error("Finished sessions have no current budget")
	}
}

func TestTimestamps(t *testing.T) {
	s := &Session{CurrentStartedAt: 1_700_000_000_123}
	if got := s.StartedAt().UnixMilli(); got != s.CurrentStartedAt {
		t.Errorf("StartedAt() = %d, want %d", got, s.CurrentStartedAt)
	}
	c := &Candidate{CreatedAt: 1_700_000_000_456}
	if got := c.Created().UnixMilli(); got != c.CreatedAt {
		t.Errorf("Created() = %d, want %d", got, c.CreatedAt)
	}
}
