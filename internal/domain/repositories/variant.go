package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// VariantRepository defines data access operations for generated variants
type VariantRepository interface {
	// Create inserts a new variant
	Create(ctx context.Context, v *models.GeneratedVariant) error

	// GetByID retrieves a variant by ID
	GetByID(ctx context.Context, id string) (*models.GeneratedVariant, error)

	// GetByDocumentAndFormat retrieves the first variant for a
	// (document, format) pair, lowest post index first
	GetByDocumentAndFormat(ctx context.Context, documentID, formatID string) (*models.GeneratedVariant, error)

	// ListByDocument retrieves all variants for a document with their formats
	ListByDocument(ctx context.Context, documentID string) ([]models.GeneratedVariant, error)

	// DeleteByDocument removes all variants for a document
	DeleteByDocument(ctx context.Context, documentID string) error

	// Update overwrites a variant's content and status
	Update(ctx context.Context, v *models.GeneratedVariant) error
}

// CalendarRepository defines data access operations for calendar posts
type CalendarRepository interface {
	// Create inserts a new calendar post
	Create(ctx context.Context, post *models.CalendarPost) error

	// List retrieves all calendar posts ordered by scheduled date
	List(ctx context.Context) ([]models.CalendarPost, error)

	// Update applies status and/or schedule changes to a post
	Update(ctx context.Context, post *models.CalendarPost) error

	// GetByID retrieves a calendar post by ID
	GetByID(ctx context.Context, id string) (*models.CalendarPost, error)
}
