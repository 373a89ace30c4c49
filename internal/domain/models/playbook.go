package models

import (
	"time"
)

// Playbook is an AI-generated step-by-step guide derived from a source
// document. Content holds the serialized step structure as returned by
// the model; slides are the presentation layout built from it.
type Playbook struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Content          string    `json:"content"`
	Prompt           string    `json:"prompt"`
	SourceDocumentID *string   `json:"sourceDocumentId"`
	IsDraft          bool      `json:"isDraft"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	SourceDocumentTitle string          `json:"sourceDocumentTitle,omitempty"`
	Slides              []PlaybookSlide `json:"slides,omitempty"`
}

// PlaybookSlide is one presentation slide of a playbook. The slide set
// is replaced wholesale on save.
type PlaybookSlide struct {
	ID         string    `json:"id"`
	PlaybookID string    `json:"playbookId"`
	Order      int       `json:"order"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Layout     string    `json:"layout"`
	Images     *string   `json:"images"`
	Position   *string   `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PlaybookStructure is the JSON shape the model is asked to return when
// generating a playbook.
type PlaybookStructure struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Steps       []PlaybookStep `json:"steps"`
}

type PlaybookStep struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Order       int      `json:"order"`
	Duration    string   `json:"duration"`
	Resources   []string `json:"resources"`
	Checkpoints []string `json:"checkpoints"`
}
