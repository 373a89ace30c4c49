package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create creates a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// List retrieves all documents, newest first
	List(ctx context.Context) ([]models.Document, error)

	// ListRecent retrieves the most recently updated documents.
	// When nonDraftOnly is set, drafts and empty documents are skipped.
	ListRecent(ctx context.Context, limit int, nonDraftOnly bool) ([]models.Document, error)

	// Update updates an existing document
	Update(ctx context.Context, doc *models.Document) error

	// Delete deletes a document (versions and variants cascade)
	Delete(ctx context.Context, id string) error

	// CreateVersion snapshots previous content with the next version number
	CreateVersion(ctx context.Context, documentID, content string) error

	// ListVersions retrieves the newest version snapshots for a document
	ListVersions(ctx context.Context, documentID string, limit int) ([]models.DocumentVersion, error)
}

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	List(ctx context.Context) ([]models.Folder, error)
}
