package profile

import (
	"context"
	"testing"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/store"
)

func TestSave_Validation(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
		want    bool
	}{
		{"valid", domain.Profile{Name: "Ada", Email: "a@b.com", Phone: "+1 5551234567"}, true},
		{"blank name", domain.Profile{Name: "  ", Email: "a@b.com", Phone: "+1 5551234567"}, false},
		{"bad email", domain.Profile{Name: "Ada", Email: "a@b", Phone: "+1 5551234567"}, false},
		{"short phone", domain.Profile{Name: "Ada", Email: "a@b.com", Phone: "12345"}, false},
		{"empty", domain.Profile{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(store.NewMemory())
			if got := s.Save(context.Background(), tt.profile); got != tt.want {
				t.Errorf("Save() = %v, want %v", got, tt.want)
			}
			if stored := s.Load(context.Background()); (stored != nil) != tt.want {
				t.Errorf("Expected stored=%v, got %+v", tt.want, stored)
			}
		})
	}
}

func TestSave_TrimsFields(t *testing.T) {
	s := NewStore(store.NewMemory())
	ok := s.Save(context.Background(), domain.Profile{Name: " Ada ", Email: " a@b.com\n", Phone: " 555 123 4567 "})
	if !ok {
		t.Fatal("Expected save to succeed")
	}

	got := s.Load(context.Background())
	if got == nil {
		t.Fatal("Expected stored profile")
	}
	if got.Name != "Ada" || got.Email != "a@b.com" || got.Phone != "555 123 4567" {
		t.Errorf("Expected trimmed profile, got %+v", got)
	}
}

func TestLoad_CorruptIsAbsent(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(context.Background(), ProfileKey, []byte("nope"))
	if got := NewStore(kv).Load(context.Background()); got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
}
