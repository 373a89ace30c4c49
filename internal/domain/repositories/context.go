package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// ContextRepository defines data access operations for uploaded context documents
type ContextRepository interface {
	// Create persists an extracted context document
	Create(ctx context.Context, doc *models.ContextDocument) error

	// GetByID retrieves a context document by ID
	GetByID(ctx context.Context, id string) (*models.ContextDocument, error)

	// ListRecent retrieves the most recently uploaded documents with content
	ListRecent(ctx context.Context, limit int) ([]models.ContextDocument, error)

	// ListByFilenames retrieves documents whose filename is in the given set
	ListByFilenames(ctx context.Context, filenames []string) ([]models.ContextDocument, error)

	// ListMetadata retrieves id/filename/createdAt for all documents, newest first
	ListMetadata(ctx context.Context) ([]models.ContextDocument, error)

	// Delete removes a context document record
	Delete(ctx context.Context, id string) error
}

// IkigaiRepository defines data access for the singleton mission record
type IkigaiRepository interface {
	// Get retrieves the mission record, or domain.ErrNotFound if unset
	Get(ctx context.Context) (*models.Ikigai, error)

	// Upsert creates or replaces the mission record
	Upsert(ctx context.Context, ikigai *models.Ikigai) error
}
