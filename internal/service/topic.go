package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

const topicIdeasMaxTokens = 1000

// TopicService manages the writing idea list and generates fresh ideas
// from the user's recent work.
type TopicService struct {
	topicRepo   repositories.TopicRepository
	docRepo     repositories.DocumentRepository
	contextRepo repositories.ContextRepository
	ikigaiRepo  repositories.IkigaiRepository
	provider    llm.Provider
	model       string
	logger      *slog.Logger
}

// NewTopicService creates a new topic service
func NewTopicService(
	topicRepo repositories.TopicRepository,
	docRepo repositories.DocumentRepository,
	contextRepo repositories.ContextRepository,
	ikigaiRepo repositories.IkigaiRepository,
	provider llm.Provider,
	model string,
	logger *slog.Logger,
) *TopicService {
	return &TopicService{
		topicRepo:   topicRepo,
		docRepo:     docRepo,
		contextRepo: contextRepo,
		ikigaiRepo:  ikigaiRepo,
		provider:    provider,
		model:       model,
		logger:      logger,
	}
}

// Create adds a topic to the list.
func (s *TopicService) Create(ctx context.Context, title string) (*models.Topic, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &domain.ValidationError{Message: "title is required"}
	}

	topic := &models.Topic{Title: title}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// List retrieves all topics, open ones first.
func (s *TopicService) List(ctx context.Context) ([]models.Topic, error) {
	return s.topicRepo.List(ctx)
}

// Update edits a topic's title and/or completion state.
func (s *TopicService) Update(ctx context.Context, id string, title *string, completed *bool) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, &domain.ValidationError{Message: "title cannot be empty"}
		}
		topic.Title = trimmed
	}
	if completed != nil {
		topic.Completed = *completed
	}

	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Delete removes a topic.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	if _, err := s.topicRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.topicRepo.Delete(ctx, id)
}

// GenerateIdeas asks the model for fresh topic ideas grounded in the
// user's recent writing, context library and mission. The ideas are
// returned to the caller, not persisted; the user picks which to keep.
func (s *TopicService) GenerateIdeas(ctx context.Context) ([]string, error) {
	if s.provider == nil {
		return nil, &domain.NotConfiguredError{Message: "llm provider not configured"}
	}

	recentWritings := ""
	if docs, err := s.docRepo.ListRecent(ctx, prompt.TopicRecentDocs, false); err != nil {
		s.logger.Warn("recent documents unavailable for idea generation", "error", err)
	} else {
		recentWritings = prompt.FormatDocumentLines(docs, prompt.TopicRecentDocChars)
	}

	contextText := ""
	if docs, err := s.contextRepo.ListRecent(ctx, prompt.TopicContextDocs); err != nil {
		s.logger.Warn("context documents unavailable for idea generation", "error", err)
	} else {
		contextText = prompt.FormatContextLines(docs, prompt.TopicContextChars)
	}

	ikigai, err := s.ikigaiRepo.Get(ctx)
	if err != nil {
		ikigai = nil
	}

	raw, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Prompt:       prompt.BuildTopicIdeasPrompt(ikigai, recentWritings, contextText),
		SystemPrompt: prompt.TopicIdeasSystemPrompt,
		Model:        s.model,
		MaxTokens:    topicIdeasMaxTokens,
		Temperature:  llm.Temp(0.8),
	})
	if err != nil {
		return nil, fmt.Errorf("topic ideas completion: %w", err)
	}

	var ideas []string
	if err := llm.ParseStructured(raw, &ideas); err != nil {
		s.logger.Warn("topic ideas response was not valid JSON, returning empty list", "error", err)
		return []string{}, nil
	}
	return ideas, nil
}
