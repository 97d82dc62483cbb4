package domain

import "time"

// Candidate is the immutable record of a completed interview.
type Candidate struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	QA        []AnswerRecord `json:"qa"`
	Total     int            `json:"total"`
	Avg       float64        `json:"avg"`
	Summary   string         `json:"summary"`
	CreatedAt int64          `json:"createdAt"`
}

// Created returns the creation time of the record.
func (c *Candidate) Created() time.Time {
	return time.UnixMilli(c.CreatedAt)
}
