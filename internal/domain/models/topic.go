package models

import (
	"time"
)

// Topic is a writing idea on the user's todo list.
type Topic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResearchInsight is one entry of a one-shot research request. Not
// persisted; returned straight to the caller.
type ResearchInsight struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Source  string `json:"source"`
	URL     string `json:"url,omitempty"`
}

// Suggestion is a single live writing suggestion. Not persisted.
type Suggestion struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Content        string  `json:"content"`
	Source         string  `json:"source"`
	RelevanceScore float64 `json:"relevanceScore"`
}
