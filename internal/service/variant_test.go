package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

type variantFixture struct {
	docRepo      *fakeDocRepo
	formatRepo   *fakeFormatRepo
	variantRepo  *fakeVariantRepo
	calendarRepo *fakeCalendarRepo
	svc          *VariantService
	document     *models.Document
	format       *models.Format
	variant      *models.GeneratedVariant
}

func newVariantFixture(t *testing.T, rules []models.PostingRule) *variantFixture {
	t.Helper()
	f := &variantFixture{
		docRepo:      newFakeDocRepo(),
		formatRepo:   &fakeFormatRepo{},
		variantRepo:  &fakeVariantRepo{},
		calendarRepo: &fakeCalendarRepo{},
	}

	f.document = f.docRepo.add(&models.Document{Title: "Post-mortems", Content: "body"})

	f.format = &models.Format{Name: "LinkedIn Post", Platform: "LinkedIn", Prompt: "p", PostingRules: rules}
	if err := f.formatRepo.Create(context.Background(), f.format); err != nil {
		t.Fatal(err)
	}

	f.variant = &models.GeneratedVariant{
		DocumentID: f.document.ID,
		FormatID:   f.format.ID,
		Content:    "generated post",
		Status:     models.VariantStatusPending,
	}
	if err := f.variantRepo.Create(context.Background(), f.variant); err != nil {
		t.Fatal(err)
	}

	f.svc = NewVariantService(f.variantRepo, f.formatRepo, f.docRepo, f.calendarRepo, fakeTxManager{}, testLogger())
	f.svc.now = func() time.Time {
		// Wednesday
		return time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func TestApprovalCreatesOneCalendarPost(t *testing.T) {
	f := newVariantFixture(t, []models.PostingRule{
		{DayOfWeek: intPtr(2), TimeOfDay: strPtr("08:00")}, // Tuesday 08:00
	})

	got, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{
		Status: models.VariantStatusApproved,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.VariantStatusApproved {
		t.Errorf("status = %q", got.Status)
	}

	if len(f.calendarRepo.posts) != 1 {
		t.Fatalf("expected exactly one calendar post, got %d", len(f.calendarRepo.posts))
	}
	post := f.calendarRepo.posts[0]
	if post.Title != "Post-mortems - LinkedIn Post" {
		t.Errorf("title = %q", post.Title)
	}
	if post.Platform != "LinkedIn" {
		t.Errorf("platform = %q", post.Platform)
	}
	if post.Content != "generated post" {
		t.Errorf("content = %q", post.Content)
	}
	if post.Status != models.CalendarStatusScheduled {
		t.Errorf("status = %q", post.Status)
	}
	want := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) // next Tuesday
	if !post.ScheduledDate.Equal(want) {
		t.Errorf("scheduled = %v, want %v", post.ScheduledDate, want)
	}
	if post.VariantID == nil || *post.VariantID != f.variant.ID {
		t.Error("expected calendar post linked to the variant")
	}
}

func TestReApprovalIsIdempotent(t *testing.T) {
	f := newVariantFixture(t, []models.PostingRule{{TimeOfDay: strPtr("09:00")}})

	for i := 0; i < 2; i++ {
		if _, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{
			Status: models.VariantStatusApproved,
		}); err != nil {
			t.Fatalf("approval %d: %v", i+1, err)
		}
	}

	if len(f.calendarRepo.posts) != 1 {
		t.Errorf("expected one calendar post after double approval, got %d", len(f.calendarRepo.posts))
	}
}

func TestRejectThenApproveSchedulesAgain(t *testing.T) {
	f := newVariantFixture(t, []models.PostingRule{{TimeOfDay: strPtr("09:00")}})

	transitions := []string{
		models.VariantStatusApproved,
		models.VariantStatusRejected,
		models.VariantStatusApproved,
	}
	for _, status := range transitions {
		if _, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{Status: status}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	// Each fresh transition into APPROVED schedules a post.
	if len(f.calendarRepo.posts) != 2 {
		t.Errorf("expected two calendar posts, got %d", len(f.calendarRepo.posts))
	}
}

func TestApprovalWithoutRuleSkipsCalendar(t *testing.T) {
	f := newVariantFixture(t, nil)

	if _, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{
		Status: models.VariantStatusApproved,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(f.calendarRepo.posts) != 0 {
		t.Errorf("expected no calendar post for a rule-less format, got %d", len(f.calendarRepo.posts))
	}
}

func TestUpdateVariantContentEdit(t *testing.T) {
	f := newVariantFixture(t, nil)

	got, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{
		Status:  models.VariantStatusPending,
		Content: strPtr("hand-edited"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Content != "hand-edited" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestUpdateVariantValidation(t *testing.T) {
	f := newVariantFixture(t, nil)

	_, err := f.svc.Update(context.Background(), f.document.ID, f.variant.ID, &UpdateVariantRequest{Status: "SHIPPED"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = f.svc.Update(context.Background(), "other-doc", f.variant.ID, &UpdateVariantRequest{Status: models.VariantStatusApproved})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for mismatched document, got %v", err)
	}
}
