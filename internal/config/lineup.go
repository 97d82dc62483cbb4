package config

import (
	"fmt"
	"os"

	"github.com/ashureev/interview-labs/internal/domain"
	"gopkg.in/yaml.v3"
)

// LineupFile is the YAML layout of a question lineup.
type LineupFile struct {
	TimeBudgets map[string]int `yaml:"time_budgets"`
	Keywords    []string       `yaml:"keywords"`
	Questions   []struct {
		Difficulty string `yaml:"difficulty"`
		Prompt     string `yaml:"prompt"`
	} `yaml:"questions"`
}

// LoadLineup reads a question lineup and scoring vocabulary from a YAML file.
// Budgets missing from the file fall back to the defaults.
func LoadLineup(filename string) (domain.Lineup, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Lineup{}, nil, fmt.Errorf("read lineup %s: %w", filename, err)
	}
	return ParseLineup(data)
}

// ParseLineup decodes and validates a YAML lineup.
func ParseLineup(data []byte) (domain.Lineup, []string, error) {
	var file LineupFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Lineup{}, nil, fmt.Errorf("parse lineup YAML: %w", err)
	}

	lineup := domain.Lineup{Budgets: domain.DefaultBudgets()}
	for name, seconds := range file.TimeBudgets {
		d := domain.Difficulty(name)
		if !d.Valid() {
			return domain.Lineup{}, nil, fmt.Errorf("unknown difficulty %q in time_budgets", name)
		}
		if seconds <= 0 {
			return domain.Lineup{}, nil, fmt.Errorf("time budget for %s must be > 0", name)
		}
		lineup.Budgets[d] = seconds
	}

	if len(file.Questions) == 0 {
		return domain.Lineup{}, nil, fmt.Errorf("lineup must contain at least one question")
	}
	for i, q := range file.Questions {
		d := domain.Difficulty(q.Difficulty)
		if !d.Valid() {
			return domain.Lineup{}, nil, fmt.Errorf("question %d has unknown difficulty %q", i+1, q.Difficulty)
		}
		if q.Prompt == "" {
			return domain.Lineup{}, nil, fmt.Errorf("question %d must have a prompt", i+1)
		}
		lineup.Questions = append(lineup.Questions, domain.Question{Difficulty: d, Prompt: q.Prompt})
	}

	return lineup, file.Keywords, nil
}
