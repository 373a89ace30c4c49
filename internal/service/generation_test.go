package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/service/llm"
)

type generationFixture struct {
	docRepo      *fakeDocRepo
	formatRepo   *fakeFormatRepo
	variantRepo  *fakeVariantRepo
	feedbackRepo *fakeFeedbackRepo
	ikigaiRepo   *fakeIkigaiRepo
	contextRepo  *fakeContextRepo
	document     *models.Document
}

func newGenerationFixture() *generationFixture {
	f := &generationFixture{
		docRepo:      newFakeDocRepo(),
		formatRepo:   &fakeFormatRepo{},
		variantRepo:  &fakeVariantRepo{},
		feedbackRepo: &fakeFeedbackRepo{},
		ikigaiRepo:   &fakeIkigaiRepo{},
		contextRepo:  &fakeContextRepo{},
	}
	f.document = f.docRepo.add(&models.Document{Title: "Post-mortems", Content: "what I learned shipping"})
	return f
}

func (f *generationFixture) service(provider llm.Provider) *GenerationService {
	agg := testAggregator(f.ikigaiRepo, f.contextRepo, f.feedbackRepo)
	return NewGenerationService(
		f.docRepo, f.formatRepo, f.variantRepo, f.feedbackRepo,
		fakeTxManager{}, agg, provider, "gpt-4o", testLogger(),
	)
}

func (f *generationFixture) addFormat(name string, postsCount int) *models.Format {
	format := &models.Format{Name: name, Platform: name, Prompt: "format as " + name, PostsCount: postsCount}
	_ = f.formatRepo.Create(context.Background(), format)
	return format
}

func TestGenerateAllFormatsVariantCounts(t *testing.T) {
	f := newGenerationFixture()
	linkedin := f.addFormat("LinkedIn", 2)
	email := f.addFormat("Email", 1)

	result, err := f.service(&llm.CannedProvider{Response: "post"}).GenerateAllFormats(context.Background(), f.document.ID)
	if err != nil {
		t.Fatalf("GenerateAllFormats: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	if len(result.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(result.Variants))
	}

	indexes := make(map[string][]int)
	for _, v := range result.Variants {
		if v.Status != models.VariantStatusPending {
			t.Errorf("variant status = %q, want PENDING", v.Status)
		}
		indexes[v.FormatID] = append(indexes[v.FormatID], v.PostIndex)
	}
	if got := indexes[linkedin.ID]; len(got) != 2 {
		t.Errorf("linkedin variants = %v, want post indexes 0 and 1", got)
	}
	if got := indexes[email.ID]; len(got) != 1 || got[0] != 0 {
		t.Errorf("email variants = %v, want a single index 0", got)
	}
}

func TestGenerateAllFormatsReplacesPreviousRun(t *testing.T) {
	f := newGenerationFixture()
	f.addFormat("LinkedIn", 1)
	svc := f.service(&llm.CannedProvider{Response: "post"})

	first, err := svc.GenerateAllFormats(context.Background(), f.document.ID)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.GenerateAllFormats(context.Background(), f.document.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	stored, _ := f.variantRepo.ListByDocument(context.Background(), f.document.ID)
	if len(stored) != 1 {
		t.Fatalf("expected second run to replace the first, got %d stored variants", len(stored))
	}
	if stored[0].ID == first.Variants[0].ID {
		t.Error("expected a fresh variant row, not the first run's")
	}
	if stored[0].ID != second.Variants[0].ID {
		t.Error("stored variant does not match the second run's result")
	}
}

func TestGenerateAllFormatsPartialFailure(t *testing.T) {
	f := newGenerationFixture()
	f.addFormat("LinkedIn", 1)
	f.addFormat("Email", 1)

	provider := &scriptedProvider{
		respond: func(req *llm.CompletionRequest) (string, error) {
			if strings.Contains(req.Prompt, "format as Email") {
				return "", errors.New("rate limited")
			}
			return "linkedin post", nil
		},
	}

	result, err := f.service(provider).GenerateAllFormats(context.Background(), f.document.ID)
	if err != nil {
		t.Fatalf("GenerateAllFormats: %v", err)
	}

	if len(result.Variants) != 1 {
		t.Fatalf("expected the surviving variant persisted, got %d", len(result.Variants))
	}
	if result.Variants[0].Content != "linkedin post" {
		t.Errorf("persisted content = %q", result.Variants[0].Content)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected one failure report, got %d", len(result.Failures))
	}
	if result.Failures[0].FormatName != "Email" || !strings.Contains(result.Failures[0].Error, "rate limited") {
		t.Errorf("failure = %+v", result.Failures[0])
	}

	stored, _ := f.variantRepo.ListByDocument(context.Background(), f.document.ID)
	if len(stored) != 1 {
		t.Errorf("expected 1 stored variant, got %d", len(stored))
	}
}

func TestGenerateAllFormatsTotalFailureKeepsExisting(t *testing.T) {
	f := newGenerationFixture()
	format := f.addFormat("LinkedIn", 1)

	existing := &models.GeneratedVariant{
		DocumentID: f.document.ID,
		FormatID:   format.ID,
		Content:    "previous run",
		Status:     models.VariantStatusApproved,
	}
	_ = f.variantRepo.Create(context.Background(), existing)

	_, err := f.service(&llm.CannedProvider{Err: errors.New("provider down")}).GenerateAllFormats(context.Background(), f.document.ID)
	if err == nil {
		t.Fatal("expected error when every generation fails")
	}

	stored, _ := f.variantRepo.ListByDocument(context.Background(), f.document.ID)
	if len(stored) != 1 || stored[0].Content != "previous run" {
		t.Errorf("expected existing variants untouched, got %v", stored)
	}
}

func TestGenerateAllFormatsSeedsDefaults(t *testing.T) {
	f := newGenerationFixture()

	result, err := f.service(&llm.CannedProvider{Response: "post"}).GenerateAllFormats(context.Background(), f.document.ID)
	if err != nil {
		t.Fatalf("GenerateAllFormats: %v", err)
	}
	if len(f.formatRepo.formats) != 4 {
		t.Fatalf("expected 4 seeded formats, got %d", len(f.formatRepo.formats))
	}
	if len(result.Variants) != 4 {
		t.Errorf("expected one variant per default format, got %d", len(result.Variants))
	}
}

func TestGenerateAllFormatsNoProvider(t *testing.T) {
	f := newGenerationFixture()
	f.addFormat("LinkedIn", 1)

	_, err := f.service(nil).GenerateAllFormats(context.Background(), f.document.ID)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateAllFormatsVariantBlockOnlyWhenMultiple(t *testing.T) {
	f := newGenerationFixture()
	f.addFormat("LinkedIn", 2)
	f.addFormat("Email", 1)

	provider := &scriptedProvider{
		respond: func(req *llm.CompletionRequest) (string, error) { return "ok", nil },
	}
	if _, err := f.service(provider).GenerateAllFormats(context.Background(), f.document.ID); err != nil {
		t.Fatalf("GenerateAllFormats: %v", err)
	}

	var withBlock, withoutBlock int
	for _, req := range provider.requests {
		if strings.Contains(req.Prompt, "of 2 for this format") {
			withBlock++
		} else {
			withoutBlock++
		}
	}
	if withBlock != 2 || withoutBlock != 1 {
		t.Errorf("variant blocks: %d with, %d without; want 2 and 1", withBlock, withoutBlock)
	}
}

func TestRegenerate(t *testing.T) {
	f := newGenerationFixture()
	format := f.addFormat("LinkedIn", 1)

	variant := &models.GeneratedVariant{
		DocumentID: f.document.ID,
		FormatID:   format.ID,
		Content:    "first draft",
		Status:     models.VariantStatusRejected,
	}
	_ = f.variantRepo.Create(context.Background(), variant)

	provider := &scriptedProvider{
		respond: func(req *llm.CompletionRequest) (string, error) { return "improved draft", nil },
	}
	svc := f.service(provider)

	got, err := svc.Regenerate(context.Background(), f.document.ID, variant.ID, "  make it punchier  ")
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	if got.Content != "improved draft" {
		t.Errorf("content = %q", got.Content)
	}
	if got.Status != models.VariantStatusPending {
		t.Errorf("status = %q, want PENDING", got.Status)
	}

	if len(f.feedbackRepo.entries) != 1 {
		t.Fatalf("expected exactly one feedback row, got %d", len(f.feedbackRepo.entries))
	}
	if f.feedbackRepo.entries[0].Feedback != "make it punchier" {
		t.Errorf("feedback = %q, want trimmed text", f.feedbackRepo.entries[0].Feedback)
	}

	// The already-saved feedback must appear in the prompt history.
	last := provider.requests[len(provider.requests)-1]
	if !strings.Contains(last.Prompt, "make it punchier") {
		t.Error("expected submitted feedback folded into the prompt")
	}
	if !strings.Contains(last.Prompt, "Previous generated version:\nfirst draft") {
		t.Error("expected previous content in the prompt")
	}
}

func TestRegenerateWithoutFeedback(t *testing.T) {
	f := newGenerationFixture()
	format := f.addFormat("LinkedIn", 1)

	variant := &models.GeneratedVariant{DocumentID: f.document.ID, FormatID: format.ID, Content: "draft"}
	_ = f.variantRepo.Create(context.Background(), variant)

	svc := f.service(&llm.CannedProvider{Response: "new draft"})
	if _, err := svc.Regenerate(context.Background(), f.document.ID, variant.ID, "   "); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	if len(f.feedbackRepo.entries) != 0 {
		t.Errorf("expected no feedback rows for blank feedback, got %d", len(f.feedbackRepo.entries))
	}
}

func TestRegenerateProviderFailureKeepsVariant(t *testing.T) {
	f := newGenerationFixture()
	format := f.addFormat("LinkedIn", 1)

	variant := &models.GeneratedVariant{
		DocumentID: f.document.ID,
		FormatID:   format.ID,
		Content:    "draft",
		Status:     models.VariantStatusApproved,
	}
	_ = f.variantRepo.Create(context.Background(), variant)

	svc := f.service(&llm.CannedProvider{Err: errors.New("provider down")})
	_, err := svc.Regenerate(context.Background(), f.document.ID, variant.ID, "feedback")
	if err == nil {
		t.Fatal("expected error")
	}

	stored, _ := f.variantRepo.GetByID(context.Background(), variant.ID)
	if stored.Content != "draft" || stored.Status != models.VariantStatusApproved {
		t.Errorf("expected variant untouched, got %+v", stored)
	}
	// Feedback persists even when the completion fails.
	if len(f.feedbackRepo.entries) != 1 {
		t.Errorf("expected feedback kept, got %d rows", len(f.feedbackRepo.entries))
	}
}

func TestRegenerateWrongDocument(t *testing.T) {
	f := newGenerationFixture()
	format := f.addFormat("LinkedIn", 1)

	variant := &models.GeneratedVariant{DocumentID: f.document.ID, FormatID: format.ID, Content: "draft"}
	_ = f.variantRepo.Create(context.Background(), variant)

	svc := f.service(&llm.CannedProvider{Response: "x"})
	_, err := svc.Regenerate(context.Background(), "other-document", variant.ID, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
