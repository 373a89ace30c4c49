package service

import (
	"context"
	"log/slog"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

// minSuggestionContent is the shortest editor content worth suggesting
// on. Below this the user has barely started typing.
const minSuggestionContent = 15

const suggestionMaxTokens = 1500

// SuggestionService produces live writing suggestions while the user
// types. Best-effort by design: every degradation path returns a nil
// suggestion rather than an error the editor would have to handle.
type SuggestionService struct {
	docRepo    repositories.DocumentRepository
	ikigaiRepo repositories.IkigaiRepository
	aggregator *prompt.Aggregator
	provider   llm.Provider
	model      string
	logger     *slog.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	docRepo repositories.DocumentRepository,
	ikigaiRepo repositories.IkigaiRepository,
	aggregator *prompt.Aggregator,
	provider llm.Provider,
	model string,
	logger *slog.Logger,
) *SuggestionService {
	return &SuggestionService{
		docRepo:    docRepo,
		ikigaiRepo: ikigaiRepo,
		aggregator: aggregator,
		provider:   provider,
		model:      model,
		logger:     logger,
	}
}

// Suggest returns one suggestion anchored to the last sentence of the
// content, or nil when the content is too short, the provider is not
// configured, or the model's answer cannot be parsed.
func (s *SuggestionService) Suggest(ctx context.Context, content string) (*models.Suggestion, error) {
	if len(content) < minSuggestionContent {
		return nil, nil
	}
	if s.provider == nil {
		return nil, nil
	}

	contextText := s.aggregator.GeneralContext(ctx, prompt.SuggestionContextDocs, prompt.SuggestionContextChars)

	previousWritings := ""
	if docs, err := s.docRepo.ListRecent(ctx, prompt.PreviousWritingsLimit, true); err != nil {
		s.logger.Warn("previous writings unavailable for suggestion", "error", err)
	} else {
		previousWritings = prompt.FormatDocumentBlocks(docs, prompt.PreviousWritingsChars)
	}

	mission := ""
	if ikigai, err := s.ikigaiRepo.Get(ctx); err == nil {
		mission = ikigai.Mission
	}

	raw, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Prompt:       prompt.BuildSuggestionPrompt(prompt.LastSentence(content), mission, contextText, previousWritings),
		SystemPrompt: prompt.SuggestionSystemPrompt,
		Model:        s.model,
		MaxTokens:    suggestionMaxTokens,
		Temperature:  llm.Temp(0.7),
	})
	if err != nil {
		s.logger.Warn("suggestion completion failed", "error", err)
		return nil, nil
	}

	var suggestion models.Suggestion
	if err := llm.ParseStructured(raw, &suggestion); err != nil {
		s.logger.Warn("suggestion response was not valid JSON", "error", err)
		return nil, nil
	}
	if suggestion.Content == "" {
		return nil, nil
	}
	return &suggestion, nil
}
