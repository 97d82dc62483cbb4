package domain

// Difficulty is the tier of a question. Each tier has its own time budget.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid returns true for the three known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single interview prompt.
type Question struct {
	Difficulty Difficulty `json:"difficulty"`
	Prompt     string     `json:"prompt"`
}

// Lineup is the ordered set of questions asked in every session together
// with the per-tier time budgets in seconds.
type Lineup struct {
	Questions []Question
	Budgets   map[Difficulty]int
}

// Budget returns the time budget in seconds for a difficulty tier.
func (l Lineup) Budget(d Difficulty) int {
	return l.Budgets[d]
}

// DefaultBudgets returns the standard time budget per tier.
func DefaultBudgets() map[Difficulty]int {
	return map[Difficulty]int{
		DifficultyEasy:   20,
		DifficultyMedium: 60,
		DifficultyHard:   120,
	}
}

// DefaultLineup returns the fixed six-question lineup.
func DefaultLineup() Lineup {
	return Lineup{
		Questions: []Question{
			{Difficulty: DifficultyEasy, Prompt: "What is React reconciliation and why is it useful?"},
			{Difficulty: DifficultyEasy, Prompt: "How do you lift state up in React? Give a tiny example."},
			{Difficulty: DifficultyMedium, Prompt: "Explain closures and one useful case in React hooks."},
			{Difficulty: DifficultyMedium, Prompt: "Node.js event loop phases—how does it affect API design?"},
			{Difficulty: DifficultyHard, Prompt: "Design a rate limiter for an Express API."},
			{Difficulty: DifficultyHard, Prompt: "Optimize a React list of 50k items: approaches & tradeoffs."},
		},
		Budgets: DefaultBudgets(),
	}
}
