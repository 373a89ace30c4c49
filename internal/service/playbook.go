package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

const playbookMaxTokens = 3000

// CreatePlaybookRequest carries the generation request for a new
// playbook. Title and description override the model's own when set.
type CreatePlaybookRequest struct {
	SourceDocumentID string `json:"sourceDocumentId"`
	Prompt           string `json:"prompt"`
	Title            string `json:"title"`
	Description      string `json:"description"`
}

// UpdatePlaybookRequest carries the editable playbook fields.
type UpdatePlaybookRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	IsDraft     *bool  `json:"isDraft"`
}

// SlideInput is one slide as submitted for a wholesale slide save.
type SlideInput struct {
	Order    int     `json:"order"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Layout   string  `json:"layout"`
	Images   *string `json:"images"`
	Position *string `json:"position"`
}

// PlaybookService generates and manages step-by-step playbooks.
type PlaybookService struct {
	playbookRepo repositories.PlaybookRepository
	docRepo      repositories.DocumentRepository
	aggregator   *prompt.Aggregator
	provider     llm.Provider
	model        string
	logger       *slog.Logger
}

// NewPlaybookService creates a new playbook service
func NewPlaybookService(
	playbookRepo repositories.PlaybookRepository,
	docRepo repositories.DocumentRepository,
	aggregator *prompt.Aggregator,
	provider llm.Provider,
	model string,
	logger *slog.Logger,
) *PlaybookService {
	return &PlaybookService{
		playbookRepo: playbookRepo,
		docRepo:      docRepo,
		aggregator:   aggregator,
		provider:     provider,
		model:        model,
		logger:       logger,
	}
}

// Create generates a playbook from a source document. The model must
// return a valid step structure; unlike suggestions or research, a
// parse failure here is surfaced because the playbook would otherwise
// be an empty shell.
func (s *PlaybookService) Create(ctx context.Context, req *CreatePlaybookRequest) (*models.Playbook, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.SourceDocumentID, validation.Required),
		validation.Field(&req.Prompt, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if s.provider == nil {
		return nil, &domain.NotConfiguredError{Message: "llm provider not configured"}
	}

	source, err := s.docRepo.GetByID(ctx, req.SourceDocumentID)
	if err != nil {
		return nil, err
	}

	blocks := prompt.Blocks{
		Mission:        s.aggregator.Mission(ctx),
		GeneralContext: s.aggregator.GeneralContext(ctx, prompt.GeneralContextDocs, prompt.GeneralContextChars),
	}

	raw, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Prompt:       prompt.BuildPlaybookPrompt(req.Prompt, source, blocks),
		SystemPrompt: prompt.PlaybookSystemPrompt,
		Model:        s.model,
		MaxTokens:    playbookMaxTokens,
		Temperature:  llm.Temp(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("generate playbook: %w", err)
	}

	var structure models.PlaybookStructure
	if err := llm.ParseStructured(raw, &structure); err != nil {
		return nil, fmt.Errorf("%w: model returned no usable playbook structure", domain.ErrValidation)
	}

	content, err := json.Marshal(structure)
	if err != nil {
		return nil, fmt.Errorf("encode playbook structure: %w", err)
	}

	pb := &models.Playbook{
		Title:            req.Title,
		Description:      req.Description,
		Content:          string(content),
		Prompt:           req.Prompt,
		SourceDocumentID: &req.SourceDocumentID,
		IsDraft:          true,
	}
	if pb.Title == "" {
		pb.Title = structure.Title
	}
	if pb.Title == "" {
		pb.Title = source.Title + " Playbook"
	}
	if pb.Description == "" {
		pb.Description = structure.Description
	}

	if err := s.playbookRepo.Create(ctx, pb); err != nil {
		return nil, err
	}

	s.logger.Info("playbook created",
		"playbook_id", pb.ID,
		"source_document_id", req.SourceDocumentID,
		"steps", len(structure.Steps),
	)
	return pb, nil
}

// Get retrieves a playbook with its slides.
func (s *PlaybookService) Get(ctx context.Context, id string) (*models.Playbook, error) {
	return s.playbookRepo.GetByID(ctx, id)
}

// List retrieves all playbooks, most recently updated first.
func (s *PlaybookService) List(ctx context.Context) ([]models.Playbook, error) {
	return s.playbookRepo.List(ctx)
}

// Update saves a playbook's editable fields.
func (s *PlaybookService) Update(ctx context.Context, id string, req *UpdatePlaybookRequest) (*models.Playbook, error) {
	pb, err := s.playbookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pb.Title = req.Title
	pb.Description = req.Description
	pb.Content = req.Content
	pb.IsDraft = true
	if req.IsDraft != nil {
		pb.IsDraft = *req.IsDraft
	}

	if err := s.playbookRepo.Update(ctx, pb); err != nil {
		return nil, err
	}
	return pb, nil
}

// Delete removes a playbook; its slides cascade.
func (s *PlaybookService) Delete(ctx context.Context, id string) error {
	if _, err := s.playbookRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.playbookRepo.Delete(ctx, id)
}

// SaveSlides replaces the full slide set of a playbook.
func (s *PlaybookService) SaveSlides(ctx context.Context, playbookID string, inputs []SlideInput) ([]models.PlaybookSlide, error) {
	if _, err := s.playbookRepo.GetByID(ctx, playbookID); err != nil {
		return nil, err
	}

	slides := make([]models.PlaybookSlide, 0, len(inputs))
	for _, in := range inputs {
		layout := in.Layout
		if layout == "" {
			layout = "text"
		}
		slides = append(slides, models.PlaybookSlide{
			Order:    in.Order,
			Title:    in.Title,
			Content:  in.Content,
			Layout:   layout,
			Images:   in.Images,
			Position: in.Position,
		})
	}

	return s.playbookRepo.ReplaceSlides(ctx, playbookID, slides)
}
