package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// PlaybookRepository defines data access operations for playbooks and slides
type PlaybookRepository interface {
	// Create inserts a new playbook
	Create(ctx context.Context, pb *models.Playbook) error

	// GetByID retrieves a playbook with its slides and source document title
	GetByID(ctx context.Context, id string) (*models.Playbook, error)

	// List retrieves all playbooks with slides, most recently updated first
	List(ctx context.Context) ([]models.Playbook, error)

	// Update updates a playbook's editable fields
	Update(ctx context.Context, pb *models.Playbook) error

	// Delete deletes a playbook (slides cascade)
	Delete(ctx context.Context, id string) error

	// ReplaceSlides deletes and recreates the full slide set for a playbook
	ReplaceSlides(ctx context.Context, playbookID string, slides []models.PlaybookSlide) ([]models.PlaybookSlide, error)
}

// TopicRepository defines data access operations for topics
type TopicRepository interface {
	Create(ctx context.Context, topic *models.Topic) error
	List(ctx context.Context) ([]models.Topic, error)
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Topic, error)
}
