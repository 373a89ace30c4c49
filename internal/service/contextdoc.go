package service

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/service/extract"
	"inkwell/internal/storage"
)

// ContextService manages the uploaded reference library. Extracted
// text lives in the database and is what prompts consume; the original
// file bytes go to object storage when one is configured.
type ContextService struct {
	contextRepo repositories.ContextRepository
	store       *storage.ObjectStore
	logger      *slog.Logger
}

// NewContextService creates a new context service. A nil store is
// allowed; uploads then keep only the extracted text.
func NewContextService(contextRepo repositories.ContextRepository, store *storage.ObjectStore, logger *slog.Logger) *ContextService {
	return &ContextService{contextRepo: contextRepo, store: store, logger: logger}
}

// Upload extracts text from a PDF or DOCX upload and stores it as a
// context document. The original bytes are written to object storage
// best-effort: a storage failure logs and keeps the extracted text,
// since prompts only ever read the text.
func (s *ContextService) Upload(ctx context.Context, filename, mimeType, folder string, data []byte) (*models.ContextDocument, error) {
	content, err := extract.Text(mimeType, data)
	if err != nil {
		return nil, err
	}

	objectKey := ""
	if s.store != nil {
		key := storage.BuildObjectKey(filename, folder, time.Now())
		if err := s.store.Upload(ctx, key, data, mimeType); err != nil {
			s.logger.Warn("object store upload failed, keeping extracted text only",
				"filename", filename,
				"error", err,
			)
		} else {
			objectKey = key
		}
	}

	doc := &models.ContextDocument{
		Filename:  filename,
		Content:   content,
		ObjectKey: objectKey,
	}
	if err := s.contextRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("context document uploaded",
		"context_id", doc.ID,
		"filename", filename,
		"chars", len(content),
	)
	return doc, nil
}

// List retrieves metadata for all context documents, newest first.
// Content is omitted; it can be large and the UI only shows filenames.
func (s *ContextService) List(ctx context.Context) ([]models.ContextDocument, error) {
	return s.contextRepo.ListMetadata(ctx)
}

// Delete removes a context document and its stored file. The object
// delete is best-effort; the database row always goes.
func (s *ContextService) Delete(ctx context.Context, id string) error {
	doc, err := s.contextRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.store != nil && doc.ObjectKey != "" {
		if err := s.store.Delete(ctx, doc.ObjectKey); err != nil {
			s.logger.Warn("object store delete failed", "key", doc.ObjectKey, "error", err)
		}
	}

	if err := s.contextRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("context document deleted", "context_id", id)
	return nil
}
