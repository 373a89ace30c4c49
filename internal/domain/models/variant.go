package models

import (
	"time"
)

// Variant statuses. APPROVED is the only transition that derives a
// calendar entry; regeneration resets a variant to PENDING.
const (
	VariantStatusPending  = "PENDING"
	VariantStatusApproved = "APPROVED"
	VariantStatusRejected = "REJECTED"
)

// GeneratedVariant is one piece of generated content for a
// (document, format, post index) triple. Every generate-all run
// replaces the document's full variant set.
type GeneratedVariant struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	FormatID   string    `json:"formatId"`
	PostIndex  int       `json:"postIndex"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Populated on reads that join the owning format.
	Format *Format `json:"format,omitempty"`
}

// ValidVariantStatus reports whether s is one of the known statuses.
func ValidVariantStatus(s string) bool {
	switch s {
	case VariantStatusPending, VariantStatusApproved, VariantStatusRejected:
		return true
	}
	return false
}
