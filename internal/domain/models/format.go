package models

import (
	"time"
)

// Format is a named output specification: the platform it targets, the
// prompt instructions used to transform a document into that shape, how
// many independent variants to generate per run, and an optional set of
// context filenames that scope which uploaded reference documents apply
// to this format only.
type Format struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Platform     string        `json:"platform"`
	Prompt       string        `json:"prompt"`
	PostsCount   int           `json:"postsCount"`
	ContextFiles []string      `json:"contextFiles"`
	PostingRules []PostingRule `json:"postingRules"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// PostingRule describes the preferred posting cadence for a format.
// Frequency is informational only; DayOfWeek (0=Sunday..6=Saturday) and
// TimeOfDay ("HH:MM") drive calendar slot derivation on approval.
type PostingRule struct {
	ID        string    `json:"id"`
	FormatID  string    `json:"formatId"`
	Frequency int       `json:"frequency"`
	DayOfWeek *int      `json:"dayOfWeek"`
	TimeOfDay *string   `json:"timeOfDay"`
	CreatedAt time.Time `json:"createdAt"`
}

// SchedulingRule returns the rule consulted when deriving a calendar
// slot. Rules are ordered by creation, so this is deterministic even
// when a format carries several.
func (f *Format) SchedulingRule() *PostingRule {
	if len(f.PostingRules) == 0 {
		return nil
	}
	return &f.PostingRules[0]
}

// FormatFeedback is an append-only note a user leaves when asking for a
// variant to be regenerated. The most recent entries are folded back
// into future regeneration prompts.
type FormatFeedback struct {
	ID         string    `json:"id"`
	FormatID   string    `json:"formatId"`
	DocumentID string    `json:"documentId"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"createdAt"`
}
