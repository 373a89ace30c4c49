package models

import (
	"time"
)

// Document is a long-form draft the user writes and later reformats
// into platform-specific posts.
type Document struct {
	ID        string    `json:"id"`
	FolderID  *string   `json:"folderId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on single-document reads.
	Versions []DocumentVersion `json:"versions,omitempty"`
}

// DocumentVersion is a snapshot of a document's previous content,
// taken whenever an update changes the content.
type DocumentVersion struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Content    string    `json:"content"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Folder groups documents in the sidebar tree.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}
