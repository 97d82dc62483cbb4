// Package scoring grades interview answers with an offline heuristic.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/ashureev/interview-labs/internal/domain"
)

const (
	MaxScore        = 20
	maxKeywordBonus = 6
	maxLengthBonus  = 6
	excerptLength   = 60
)

// Scorer grades answers and summarizes a completed interview.
type Scorer interface {
	Grade(question, answer string, difficulty domain.Difficulty) int
	Summarize(name string, records []domain.AnswerRecord, roundedAvg int) string
}

// DefaultKeywords is the vocabulary rewarded by the heuristic.
var DefaultKeywords = []string{
	"react", "hook", "closure", "event", "loop", "express", "rate", "limit",
	"virtual", "dom", "memo", "optimiz", "cache", "queue", "throttle", "debounce",
}

var baseScores = map[domain.Difficulty]int{
	domain.DifficultyEasy:   8,
	domain.DifficultyMedium: 12,
	domain.DifficultyHard:   14,
}

// Heuristic scores answers by base difficulty, keyword hits and length.
type Heuristic struct {
	keywords []string
}

// NewHeuristic creates a heuristic scorer. An empty vocabulary selects
// DefaultKeywords.
func NewHeuristic(keywords []string) *Heuristic {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	seen := make(map[string]bool, len(keywords))
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		normalized = append(normalized, k)
	}
	return &Heuristic{keywords: normalized}
}

// Grade returns a score in [0, MaxScore]. The question text is not used by
// this heuristic.
func (h *Heuristic) Grade(_ string, answer string, difficulty domain.Difficulty) int {
	base, ok := baseScores[difficulty]
	if !ok {
		base = baseScores[domain.DifficultyHard]
	}

	score := base + h.keywordBonus(answer) + lengthBonus(answer)
	return max(0, min(MaxScore, score))
}

func (h *Heuristic) keywordBonus(answer string) int {
	lower := strings.ToLower(answer)
	matched := 0
	for _, k := range h.keywords {
		if strings.Contains(lower, k) {
			matched++
		}
	}
	return min(maxKeywordBonus, matched)
}

func lengthBonus(answer string) int {
	words := len(strings.Fields(answer))
	return min(maxLengthBonus, int(math.Floor(math.Sqrt(float64(words)))))
}

// Summarize names the strongest and weakest answers. Ties go to the earliest
// record.
func (h *Heuristic) Summarize(name string, records []domain.AnswerRecord, roundedAvg int) string {
	var strong, weak domain.AnswerRecord
	if len(records) > 0 {
		strong, weak = records[0], records[0]
	}
	for _, r := range records[min(1, len(records)):] {
		if r.Score > strong.Score {
			strong = r
		}
		if r.Score < weak.Score {
			weak = r
		}
	}

	return fmt.Sprintf("%s scored an average %d/20. Strongest on “%s”, needs improvement on “%s”.",
		name, roundedAvg, excerpt(strong.Question), excerpt(weak.Question))
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) > excerptLength {
		return string(r[:excerptLength])
	}
	return s
}
