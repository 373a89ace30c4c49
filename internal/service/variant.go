package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// UpdateVariantRequest carries a status transition and an optional
// content edit for a generated variant.
type UpdateVariantRequest struct {
	Status  string  `json:"status"`
	Content *string `json:"content"`
}

// VariantService manages generated variant review: listing, manual
// edits, and the approval transition that derives a calendar entry.
type VariantService struct {
	variantRepo  repositories.VariantRepository
	formatRepo   repositories.FormatRepository
	docRepo      repositories.DocumentRepository
	calendarRepo repositories.CalendarRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger

	// now is swappable for schedule tests.
	now func() time.Time
}

// NewVariantService creates a new variant service
func NewVariantService(
	variantRepo repositories.VariantRepository,
	formatRepo repositories.FormatRepository,
	docRepo repositories.DocumentRepository,
	calendarRepo repositories.CalendarRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *VariantService {
	return &VariantService{
		variantRepo:  variantRepo,
		formatRepo:   formatRepo,
		docRepo:      docRepo,
		calendarRepo: calendarRepo,
		txManager:    txManager,
		logger:       logger,
		now:          time.Now,
	}
}

// ListByDocument retrieves all variants of a document with their
// owning formats.
func (s *VariantService) ListByDocument(ctx context.Context, documentID string) ([]models.GeneratedVariant, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.variantRepo.ListByDocument(ctx, documentID)
}

// Update applies a status transition (and optional content edit) to a
// variant. The first transition into APPROVED creates exactly one
// calendar post in the same transaction; approving an already-approved
// variant changes nothing on the calendar. A format without any posting
// rule yields no calendar post.
func (s *VariantService) Update(ctx context.Context, documentID, variantID string, req *UpdateVariantRequest) (*models.GeneratedVariant, error) {
	if !models.ValidVariantStatus(req.Status) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid status %q", req.Status)}
	}

	variant, err := s.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.DocumentID != documentID {
		return nil, &domain.NotFoundError{Message: "variant not found for document"}
	}

	newlyApproved := req.Status == models.VariantStatusApproved && variant.Status != models.VariantStatusApproved

	if req.Content != nil && *req.Content != "" {
		variant.Content = *req.Content
	}
	variant.Status = req.Status

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.variantRepo.Update(txCtx, variant); err != nil {
			return err
		}
		if newlyApproved {
			return s.createCalendarEntry(txCtx, variant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return variant, nil
}

func (s *VariantService) createCalendarEntry(ctx context.Context, variant *models.GeneratedVariant) error {
	format, err := s.formatRepo.GetByID(ctx, variant.FormatID)
	if err != nil {
		return err
	}

	rule := format.SchedulingRule()
	if rule == nil {
		s.logger.Info("format has no posting rule, skipping calendar entry",
			"variant_id", variant.ID,
			"format_id", format.ID,
		)
		return nil
	}

	document, err := s.docRepo.GetByID(ctx, variant.DocumentID)
	if err != nil {
		return err
	}
	title := document.Title
	if title == "" {
		title = "Untitled"
	}

	post := &models.CalendarPost{
		VariantID:     &variant.ID,
		Title:         fmt.Sprintf("%s - %s", title, format.Name),
		Content:       variant.Content,
		Platform:      format.Platform,
		ScheduledDate: DeriveSchedule(rule, s.now()),
		Status:        models.CalendarStatusScheduled,
	}
	if err := s.calendarRepo.Create(ctx, post); err != nil {
		return err
	}

	s.logger.Info("calendar post scheduled",
		"variant_id", variant.ID,
		"platform", post.Platform,
		"scheduled_date", post.ScheduledDate,
	)
	return nil
}
