package service

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// UpdateCalendarRequest carries edits to a calendar post. Either field
// may be omitted; at least one must be set.
type UpdateCalendarRequest struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// CalendarService manages the posting calendar.
type CalendarService struct {
	calendarRepo repositories.CalendarRepository
	logger       *slog.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(calendarRepo repositories.CalendarRepository, logger *slog.Logger) *CalendarService {
	return &CalendarService{calendarRepo: calendarRepo, logger: logger}
}

// List retrieves all calendar posts ordered by scheduled date.
func (s *CalendarService) List(ctx context.Context) ([]models.CalendarPost, error) {
	return s.calendarRepo.List(ctx)
}

// Update changes a post's status and/or scheduled date.
func (s *CalendarService) Update(ctx context.Context, req *UpdateCalendarRequest) (*models.CalendarPost, error) {
	if req.ID == "" {
		return nil, &domain.ValidationError{Message: "id is required"}
	}
	if req.Status == "" && req.ScheduledDate == nil {
		return nil, &domain.ValidationError{Message: "nothing to update"}
	}
	if req.Status != "" && !models.ValidCalendarStatus(req.Status) {
		return nil, &domain.ValidationError{Message: "invalid status " + req.Status}
	}

	post, err := s.calendarRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		post.Status = req.Status
	}
	if req.ScheduledDate != nil {
		post.ScheduledDate = *req.ScheduledDate
	}

	if err := s.calendarRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
