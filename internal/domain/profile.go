// Package domain contains core domain types for the interview engine.
package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`\+?\d[\d -]{8,}\d`)
)

// Profile identifies the candidate taking the interview.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ValidEmail reports whether v looks like an email address.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(strings.TrimSpace(v))
}

// ValidPhone reports whether v contains a plausible phone number.
func ValidPhone(v string) bool {
	return phonePattern.MatchString(strings.TrimSpace(v))
}

// Normalized returns a copy of the profile with surrounding whitespace removed.
func (p Profile) Normalized() Profile {
	return Profile{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
		Phone: strings.TrimSpace(p.Phone),
	}
}

// Valid returns true if the name is non-blank and email and phone pass validation.
func (p Profile) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && ValidEmail(p.Email) && ValidPhone(p.Phone)
}
