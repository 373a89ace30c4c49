package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// Documents returned with a single read include this many version
// snapshots, newest first.
const versionHistoryLimit = 5

// CreateDocumentRequest carries the fields for a new document.
type CreateDocumentRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	FolderID *string `json:"folderId"`
}

// UpdateDocumentRequest carries a full-document save. Title falls back
// to the stored title when empty; IsDraft keeps its stored value when
// omitted.
type UpdateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsDraft *bool  `json:"isDraft"`
}

// DocumentService manages documents, their version history and folders.
type DocumentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create creates a new document. Untitled drafts are allowed; a missing
// title becomes "Untitled" and new documents start as drafts.
func (s *DocumentService) Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Length(0, 500)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc := &models.Document{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		IsDraft:  true,
	}
	if doc.Title == "" {
		doc.Title = "Untitled"
	}
	if doc.FolderID != nil && *doc.FolderID == "" {
		doc.FolderID = nil
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created", "document_id", doc.ID, "title", doc.Title)
	return doc, nil
}

// Get retrieves a document with its recent version history.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	versions, err := s.docRepo.ListVersions(ctx, id, versionHistoryLimit)
	if err != nil {
		return nil, err
	}
	doc.Versions = versions

	return doc, nil
}

// List retrieves all documents and folders for the sidebar, documents
// most recently updated first.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, []models.Folder, error) {
	docs, err := s.docRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return docs, folders, nil
}

// Update saves a document. When the content changed, the previous
// content is snapshotted as the next version in the same transaction
// as the update, so history and current state never diverge.
func (s *DocumentService) Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error) {
	current, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != "" {
		updated.Title = req.Title
	}
	updated.Content = req.Content
	if req.IsDraft != nil {
		updated.IsDraft = *req.IsDraft
	}

	contentChanged := current.Content != req.Content

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if contentChanged {
			if err := s.docRepo.CreateVersion(txCtx, id, current.Content); err != nil {
				return fmt.Errorf("snapshot version: %w", err)
			}
		}
		return s.docRepo.Update(txCtx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a document. Versions and generated variants cascade.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", "document_id", id)
	return nil
}

// CreateFolderRequest carries the fields for a new folder.
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// CreateFolder creates a sidebar folder.
func (s *DocumentService) CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder := &models.Folder{
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if folder.ParentID != nil && *folder.ParentID == "" {
		folder.ParentID = nil
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}
