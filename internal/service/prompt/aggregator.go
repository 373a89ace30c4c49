package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// Context budget constants. These are fixed, not configurable: they
// bound prompt size per call site.
const (
	// GeneralContextDocs / GeneralContextChars bound the shared
	// knowledge-base block used for format generation and playbooks.
	GeneralContextDocs  = 5
	GeneralContextChars = 800

	// SuggestionContextDocs / SuggestionContextChars bound the larger
	// block used for live writing suggestions.
	SuggestionContextDocs  = 10
	SuggestionContextChars = 1000

	// FeedbackHistoryLimit is how many prior feedback entries are folded
	// into a regeneration prompt, newest first.
	FeedbackHistoryLimit = 5

	// PreviousWritingsLimit / PreviousWritingsChars bound the recent
	// published-writing block used for suggestions.
	PreviousWritingsLimit = 5
	PreviousWritingsChars = 500

	// Topic idea generation uses shorter summaries across more sources.
	TopicRecentDocs     = 10
	TopicRecentDocChars = 200
	TopicContextDocs    = 5
	TopicContextChars   = 300
)

// Blocks holds the aggregated plain-text context for one prompt build.
// Any block may be empty; prompt assembly skips empty sections.
type Blocks struct {
	Mission        string
	GeneralContext string
	FormatContext  string
	Feedback       []string
}

// Aggregator collects mission, context documents and feedback history
// into plain text blocks. It is strictly read-only and never fails:
// every lookup error degrades to an empty block with a warn log, so
// generation always proceeds with whatever context is available.
type Aggregator struct {
	ikigaiRepo   repositories.IkigaiRepository
	contextRepo  repositories.ContextRepository
	feedbackRepo repositories.FeedbackRepository
	logger       *slog.Logger
}

// NewAggregator creates a new context aggregator
func NewAggregator(
	ikigaiRepo repositories.IkigaiRepository,
	contextRepo repositories.ContextRepository,
	feedbackRepo repositories.FeedbackRepository,
	logger *slog.Logger,
) *Aggregator {
	return &Aggregator{
		ikigaiRepo:   ikigaiRepo,
		contextRepo:  contextRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// Mission returns the formatted mission block, or "" when no record exists.
func (a *Aggregator) Mission(ctx context.Context) string {
	ikigai, err := a.ikigaiRepo.Get(ctx)
	if err != nil {
		a.logger.Warn("mission record unavailable, continuing without it", "error", err)
		return ""
	}
	return FormatMission(ikigai)
}

// GeneralContext returns the shared knowledge-base block built from the
// most recently uploaded context documents.
func (a *Aggregator) GeneralContext(ctx context.Context, docLimit, charBudget int) string {
	docs, err := a.contextRepo.ListRecent(ctx, docLimit)
	if err != nil {
		a.logger.Warn("context documents unavailable, continuing without them", "error", err)
		return ""
	}
	return FormatContextDocs(docs, charBudget)
}

// FormatContext returns the format-scoped block for a format that
// declares context filenames. Empty scope means no block.
func (a *Aggregator) FormatContext(ctx context.Context, filenames []string, charBudget int) string {
	if len(filenames) == 0 {
		return ""
	}
	docs, err := a.contextRepo.ListByFilenames(ctx, filenames)
	if err != nil {
		a.logger.Warn("format-scoped context unavailable, continuing without it", "error", err)
		return ""
	}
	return FormatContextDocs(docs, charBudget)
}

// RecentFeedback returns the newest feedback texts for a format,
// newest first.
func (a *Aggregator) RecentFeedback(ctx context.Context, formatID string) []string {
	entries, err := a.feedbackRepo.ListRecentByFormat(ctx, formatID, FeedbackHistoryLimit)
	if err != nil {
		a.logger.Warn("feedback history unavailable, continuing without it", "error", err)
		return nil
	}
	texts := make([]string, 0, len(entries))
	for _, fb := range entries {
		texts = append(texts, fb.Feedback)
	}
	return texts
}

// FormatMission renders the mission record as a labeled block. Pure:
// identical records yield byte-identical output.
func FormatMission(ikigai *models.Ikigai) string {
	if ikigai == nil {
		return ""
	}
	enemy := "Not specified"
	if ikigai.Enemy != nil && *ikigai.Enemy != "" {
		enemy = *ikigai.Enemy
	}
	return fmt.Sprintf(`IKIGAI - CORE MISSION & PURPOSE (This should guide ALL content creation):
Mission: %s
Purpose: %s
Values: %s
Goals: %s
Target Audience: %s
Brand Voice: %s
What You Stand Against: %s`,
		ikigai.Mission,
		ikigai.Purpose,
		ikigai.Values,
		ikigai.Goals,
		ikigai.Audience,
		ikigai.Voice,
		enemy,
	)
}

// FormatContextDocs renders context documents as "[filename]\ncontent"
// blocks, each content truncated to the character budget.
func FormatContextDocs(docs []models.ContextDocument, charBudget int) string {
	if len(docs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", doc.Filename, Truncate(doc.Content, charBudget)))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatDocumentBlocks renders documents as "[title]\ncontent" blocks,
// each content truncated to the character budget.
func FormatDocumentBlocks(docs []models.Document, charBudget int) string {
	if len(docs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", doc.Title, Truncate(doc.Content, charBudget)))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatDocumentLines renders documents as "title: content" summaries.
func FormatDocumentLines(docs []models.Document, charBudget int) string {
	if len(docs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, fmt.Sprintf("%s: %s", doc.Title, Truncate(doc.Content, charBudget)))
	}
	return strings.Join(lines, "\n\n")
}

// FormatContextLines renders context documents as "filename: content"
// summaries.
func FormatContextLines(docs []models.ContextDocument, charBudget int) string {
	if len(docs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, fmt.Sprintf("%s: %s", doc.Filename, Truncate(doc.Content, charBudget)))
	}
	return strings.Join(lines, "\n\n")
}

// Truncate bounds s to at most n bytes. Context documents are extracted
// text, so a mid-rune cut at worst loses one character of context.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
