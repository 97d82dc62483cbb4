// Package candidate stores completed interviews and answers ranking queries.
package candidate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CandidatesKey is the key under which the whole collection is stored.
const CandidatesKey = "candidates"

// Sort orders accepted by Query.
const (
	SortScore = "score"
	SortDate  = "date"
	SortName  = "name"
)

// Repository is an append-only collection of candidates.
type Repository struct {
	kv store.KV
	mu sync.Mutex // Serializes load-append-save
}

// NewRepository creates a repository backed by kv.
func NewRepository(kv store.KV) *Repository {
	return &Repository{kv: kv}
}

// load reads the collection. Absent or malformed data is an empty
// collection; a failed read is an error.
func (r *Repository) load(ctx context.Context) ([]domain.Candidate, error) {
	var all []domain.Candidate
	ok, err := store.ReadJSON(ctx, r.kv, CandidatesKey, &all)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return all, nil
}

// all is load for queries, which report nothing when the read fails.
func (r *Repository) all(ctx context.Context) []domain.Candidate {
	all, err := r.load(ctx)
	if err != nil {
		slog.Warn("Failed to read candidates", "error", err)
		return nil
	}
	return all
}

// Append adds c to the end of the collection. A candidate whose ID is
// already recorded is left as it is, so a retried completion records once.
func (r *Repository) Append(ctx context.Context, c domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if slices.ContainsFunc(all, func(existing domain.Candidate) bool { return existing.ID == c.ID }) {
		slog.Info("Candidate already recorded", "candidate_id", c.ID)
		return nil
	}

	all = append(all, c)
	if err := store.SaveJSON(ctx, r.kv, CandidatesKey, all); err != nil {
		return fmt.Errorf("append candidate %s: %w", c.ID, err)
	}
	return nil
}

// Get returns the candidate with id, or nil if there is none.
func (r *Repository) Get(ctx context.Context, id string) *domain.Candidate {
	for _, c := range r.all(ctx) {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// Query returns candidates whose name or email contains filter
// (case-insensitive), ordered by sortBy. Unknown orders sort by score.
// Equal keys keep insertion order.
func (r *Repository) Query(ctx context.Context, filter, sortBy string) []domain.Candidate {
	all := r.all(ctx)

	if needle := strings.ToLower(filter); needle != "" {
		all = slices.DeleteFunc(all, func(c domain.Candidate) bool {
			return !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle)
		})
	}

	switch sortBy {
	case SortDate:
		slices.SortStableFunc(all, func(a, b domain.Candidate) int {
			return b.Created().Compare(a.Created())
		})
	case SortName:
		col := collate.New(language.Und)
		slices.SortStableFunc(all, func(a, b domain.Candidate) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(all, func(a, b domain.Candidate) int {
			return b.Total - a.Total
		})
	}

	if all == nil {
		return []domain.Candidate{}
	}
	return all
}
