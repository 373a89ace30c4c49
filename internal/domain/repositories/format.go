package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// FormatRepository defines data access operations for formats and their
// posting rules. Posting rules are owned rows: they are written and
// replaced together with the format.
type FormatRepository interface {
	// Create creates a new format with its posting rules
	Create(ctx context.Context, format *models.Format) error

	// GetByID retrieves a format (with posting rules) by ID
	GetByID(ctx context.Context, id string) (*models.Format, error)

	// List retrieves all formats with posting rules, ordered by name
	List(ctx context.Context) ([]models.Format, error)

	// Update updates a format and replaces its posting rules
	Update(ctx context.Context, format *models.Format) error

	// Delete deletes a format (rules, variants and feedback cascade)
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository defines data access operations for regeneration feedback
type FeedbackRepository interface {
	// Create appends a feedback entry
	Create(ctx context.Context, fb *models.FormatFeedback) error

	// ListRecentByFormat retrieves the newest feedback entries for a format
	ListRecentByFormat(ctx context.Context, formatID string, limit int) ([]models.FormatFeedback, error)
}
