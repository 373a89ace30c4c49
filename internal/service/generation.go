package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/seed"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

// maxConcurrentCompletions bounds the fan-out of a generate-all run so
// a document with many formats and variants does not stampede the
// provider's rate limits.
const maxConcurrentCompletions = 4

const completionMaxTokens = 2000

// GenerationFailure reports one variant call that failed during a run.
// Successes are persisted regardless.
type GenerationFailure struct {
	FormatID   string `json:"formatId"`
	FormatName string `json:"formatName"`
	PostIndex  int    `json:"postIndex"`
	Error      string `json:"error"`
}

// GenerationResult is the outcome of a generate-all run.
type GenerationResult struct {
	Variants []models.GeneratedVariant `json:"documentFormats"`
	Failures []GenerationFailure       `json:"failures,omitempty"`
}

// GenerationService turns documents into platform-specific variants
// through the configured LLM provider.
type GenerationService struct {
	docRepo      repositories.DocumentRepository
	formatRepo   repositories.FormatRepository
	variantRepo  repositories.VariantRepository
	feedbackRepo repositories.FeedbackRepository
	txManager    repositories.TransactionManager
	aggregator   *prompt.Aggregator
	provider     llm.Provider
	model        string
	logger       *slog.Logger
}

// NewGenerationService creates a new generation service. A nil provider
// is allowed; generation calls then fail with a configuration error.
func NewGenerationService(
	docRepo repositories.DocumentRepository,
	formatRepo repositories.FormatRepository,
	variantRepo repositories.VariantRepository,
	feedbackRepo repositories.FeedbackRepository,
	txManager repositories.TransactionManager,
	aggregator *prompt.Aggregator,
	provider llm.Provider,
	model string,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		docRepo:      docRepo,
		formatRepo:   formatRepo,
		variantRepo:  variantRepo,
		feedbackRepo: feedbackRepo,
		txManager:    txManager,
		aggregator:   aggregator,
		provider:     provider,
		model:        model,
		logger:       logger,
	}
}

type variantCall struct {
	format    *models.Format
	postIndex int
	content   string
	err       error
}

// GenerateAllFormats generates content for every format and every
// variant index of the document, then replaces the document's variant
// set in one transaction.
//
// Completion calls fan out concurrently; one failed call does not
// cancel its siblings. Successful variants are persisted as PENDING
// and failures are reported alongside them. When every call fails the
// existing variant set is left untouched.
func (s *GenerationService) GenerateAllFormats(ctx context.Context, documentID string) (*GenerationResult, error) {
	if s.provider == nil {
		return nil, &domain.NotConfiguredError{Message: "llm provider not configured"}
	}

	document, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	formats, err := seed.EnsureDefaultFormats(ctx, s.formatRepo, s.logger)
	if err != nil {
		return nil, err
	}

	mission := s.aggregator.Mission(ctx)
	general := s.aggregator.GeneralContext(ctx, prompt.GeneralContextDocs, prompt.GeneralContextChars)

	var calls []*variantCall
	for i := range formats {
		f := &formats[i]
		count := f.PostsCount
		if count < 1 {
			count = 1
		}
		for idx := 0; idx < count; idx++ {
			calls = append(calls, &variantCall{format: f, postIndex: idx})
		}
	}

	// Format-scoped context is fetched once per format, not per variant.
	formatContext := make(map[string]string, len(formats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCompletions)
	for _, call := range calls {
		g.Go(func() error {
			mu.Lock()
			scoped, ok := formatContext[call.format.ID]
			mu.Unlock()
			if !ok {
				scoped = s.aggregator.FormatContext(gctx, call.format.ContextFiles, prompt.GeneralContextChars)
				mu.Lock()
				formatContext[call.format.ID] = scoped
				mu.Unlock()
			}

			blocks := prompt.Blocks{
				Mission:        mission,
				GeneralContext: general,
				FormatContext:  scoped,
			}
			count := call.format.PostsCount
			if count < 1 {
				count = 1
			}

			content, err := s.provider.Complete(gctx, &llm.CompletionRequest{
				Prompt:       prompt.BuildFormatPrompt(call.format, document, blocks, call.postIndex, count),
				SystemPrompt: prompt.FormatSystemPrompt(call.format.Platform),
				Model:        s.model,
				MaxTokens:    completionMaxTokens,
				Temperature:  llm.Temp(0.7),
			})
			if err != nil {
				call.err = err
				s.logger.Warn("variant generation failed",
					"document_id", documentID,
					"format_id", call.format.ID,
					"post_index", call.postIndex,
					"error", err,
				)
				return nil
			}
			call.content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &GenerationResult{}
	var succeeded []*variantCall
	for _, call := range calls {
		if call.err != nil {
			result.Failures = append(result.Failures, GenerationFailure{
				FormatID:   call.format.ID,
				FormatName: call.format.Name,
				PostIndex:  call.postIndex,
				Error:      call.err.Error(),
			})
			continue
		}
		succeeded = append(succeeded, call)
	}

	if len(succeeded) == 0 {
		return nil, fmt.Errorf("all %d variant generations failed", len(calls))
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.variantRepo.DeleteByDocument(txCtx, documentID); err != nil {
			return err
		}
		for _, call := range succeeded {
			v := &models.GeneratedVariant{
				DocumentID: documentID,
				FormatID:   call.format.ID,
				PostIndex:  call.postIndex,
				Content:    call.content,
				Status:     models.VariantStatusPending,
			}
			if err := s.variantRepo.Create(txCtx, v); err != nil {
				return err
			}
			result.Variants = append(result.Variants, *v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("variants generated",
		"document_id", documentID,
		"succeeded", len(result.Variants),
		"failed", len(result.Failures),
	)
	return result, nil
}

// Regenerate rewrites one existing variant, folding in the feedback
// just submitted plus the format's recent feedback history. The
// feedback row is persisted before the completion call, so it is kept
// even when the provider errors. On success the variant's content is
// replaced and its status reset to PENDING.
func (s *GenerationService) Regenerate(ctx context.Context, documentID, variantID, feedback string) (*models.GeneratedVariant, error) {
	if s.provider == nil {
		return nil, &domain.NotConfiguredError{Message: "llm provider not configured"}
	}

	variant, err := s.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.DocumentID != documentID {
		return nil, &domain.NotFoundError{Message: "variant not found for document"}
	}

	format, err := s.formatRepo.GetByID(ctx, variant.FormatID)
	if err != nil {
		return nil, err
	}
	document, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	feedback = strings.TrimSpace(feedback)
	if feedback != "" {
		fb := &models.FormatFeedback{
			FormatID:   format.ID,
			DocumentID: documentID,
			Feedback:   feedback,
		}
		if err := s.feedbackRepo.Create(ctx, fb); err != nil {
			return nil, fmt.Errorf("save feedback: %w", err)
		}
	}

	blocks := prompt.Blocks{
		Mission:        s.aggregator.Mission(ctx),
		GeneralContext: s.aggregator.GeneralContext(ctx, prompt.GeneralContextDocs, prompt.GeneralContextChars),
		Feedback:       s.aggregator.RecentFeedback(ctx, format.ID),
	}

	content, err := s.provider.Complete(ctx, &llm.CompletionRequest{
		Prompt:      prompt.BuildRegeneratePrompt(format, document, variant.Content, blocks, feedback),
		Model:       s.model,
		MaxTokens:   completionMaxTokens,
		Temperature: llm.Temp(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("regenerate variant: %w", err)
	}

	variant.Content = content
	variant.Status = models.VariantStatusPending
	if err := s.variantRepo.Update(ctx, variant); err != nil {
		return nil, err
	}

	s.logger.Info("variant regenerated", "document_id", documentID, "variant_id", variantID)
	return variant, nil
}
