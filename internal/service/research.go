package service

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

const researchMaxTokens = 2500

// ResearchService answers one-shot research requests. Nothing is
// persisted; the insight list goes straight back to the caller.
type ResearchService struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// NewResearchService creates a new research service
func NewResearchService(provider llm.Provider, model string, logger *slog.Logger) *ResearchService {
	return &ResearchService{provider: provider, model: model, logger: logger}
}

// Research asks the model for studies, frameworks and statistics
// related to the content. An unparseable response degrades to an empty
// list; research is an enhancement, not a pipeline step.
func (s *ResearchService) Research(ctx context.Context, content, customQuery string) ([]models.ResearchInsight, error) {
	if content == "" {
		return nil, &domain.ValidationError{Message: "content is required"}
	}
	if s.provider == nil {
		return nil, &domain.NotConfiguredError{Message: "llm provider not configured"}
	}

	raw, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Prompt:       prompt.BuildResearchPrompt(content, customQuery),
		SystemPrompt: prompt.ResearchSystemPrompt,
		Model:        s.model,
		MaxTokens:    researchMaxTokens,
		Temperature:  llm.Temp(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("research completion: %w", err)
	}

	var insights []models.ResearchInsight
	if err := llm.ParseStructured(raw, &insights); err != nil {
		s.logger.Warn("research response was not valid JSON, returning empty list", "error", err)
		return []models.ResearchInsight{}, nil
	}
	return insights, nil
}
