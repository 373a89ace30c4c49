package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// maxPostsCount bounds how many variants one format may request per
// generation run.
const maxPostsCount = 10

var timeOfDayPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// PostingRuleInput is a posting rule as submitted by the client.
type PostingRuleInput struct {
	Frequency int     `json:"frequency"`
	DayOfWeek *int    `json:"dayOfWeek"`
	TimeOfDay *string `json:"timeOfDay"`
}

// FormatRequest carries the fields for creating or updating a format.
type FormatRequest struct {
	Name         string             `json:"name"`
	Platform     string             `json:"platform"`
	Prompt       string             `json:"prompt"`
	PostsCount   int                `json:"postsCount"`
	ContextFiles []string           `json:"contextFiles"`
	PostingRules []PostingRuleInput `json:"postingRules"`
}

// Validate checks the request with full rule validation. Rule order is
// meaningful: the first rule drives calendar slot derivation.
func (r *FormatRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Platform, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Prompt, validation.Required),
		validation.Field(&r.PostsCount, validation.Min(0), validation.Max(maxPostsCount)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	for i, rule := range r.PostingRules {
		if rule.DayOfWeek != nil && (*rule.DayOfWeek < 0 || *rule.DayOfWeek > 6) {
			return fmt.Errorf("%w: postingRules[%d].dayOfWeek must be 0-6", domain.ErrValidation, i)
		}
		if rule.TimeOfDay != nil && !timeOfDayPattern.MatchString(*rule.TimeOfDay) {
			return fmt.Errorf("%w: postingRules[%d].timeOfDay must be HH:MM", domain.ErrValidation, i)
		}
	}
	return nil
}

// FormatService manages output format definitions.
type FormatService struct {
	formatRepo repositories.FormatRepository
	logger     *slog.Logger
}

// NewFormatService creates a new format service
func NewFormatService(formatRepo repositories.FormatRepository, logger *slog.Logger) *FormatService {
	return &FormatService{formatRepo: formatRepo, logger: logger}
}

// Create creates a format with its posting rules. PostsCount defaults
// to one variant per run.
func (s *FormatService) Create(ctx context.Context, req *FormatRequest) (*models.Format, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	format := req.toModel()
	if err := s.formatRepo.Create(ctx, format); err != nil {
		return nil, err
	}

	s.logger.Info("format created", "format_id", format.ID, "name", format.Name)
	return format, nil
}

// Get retrieves a format by ID.
func (s *FormatService) Get(ctx context.Context, id string) (*models.Format, error) {
	return s.formatRepo.GetByID(ctx, id)
}

// List retrieves all formats with their posting rules.
func (s *FormatService) List(ctx context.Context) ([]models.Format, error) {
	return s.formatRepo.List(ctx)
}

// Update replaces a format's fields and its full posting rule set.
func (s *FormatService) Update(ctx context.Context, id string, req *FormatRequest) (*models.Format, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.formatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	format := req.toModel()
	format.ID = existing.ID
	format.CreatedAt = existing.CreatedAt

	if err := s.formatRepo.Update(ctx, format); err != nil {
		return nil, err
	}
	return format, nil
}

// Delete removes a format. Its rules, variants and feedback cascade.
func (s *FormatService) Delete(ctx context.Context, id string) error {
	if _, err := s.formatRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.formatRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("format deleted", "format_id", id)
	return nil
}

func (r *FormatRequest) toModel() *models.Format {
	format := &models.Format{
		Name:         r.Name,
		Platform:     r.Platform,
		Prompt:       r.Prompt,
		PostsCount:   r.PostsCount,
		ContextFiles: r.ContextFiles,
	}
	if format.PostsCount < 1 {
		format.PostsCount = 1
	}
	for _, rule := range r.PostingRules {
		format.PostingRules = append(format.PostingRules, models.PostingRule{
			Frequency: rule.Frequency,
			DayOfWeek: rule.DayOfWeek,
			TimeOfDay: rule.TimeOfDay,
		})
	}
	return format
}
