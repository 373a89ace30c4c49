package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/domain"
)

func TestFormatRequestValidate(t *testing.T) {
	valid := FormatRequest{
		Name:     "LinkedIn Post",
		Platform: "LinkedIn",
		Prompt:   "transform it",
		PostingRules: []PostingRuleInput{
			{Frequency: 3, DayOfWeek: intPtr(2), TimeOfDay: strPtr("09:00")},
		},
	}

	tests := []struct {
		name    string
		mutate  func(r *FormatRequest)
		wantErr bool
	}{
		{"valid", func(r *FormatRequest) {}, false},
		{"missing name", func(r *FormatRequest) { r.Name = "" }, true},
		{"missing platform", func(r *FormatRequest) { r.Platform = "" }, true},
		{"missing prompt", func(r *FormatRequest) { r.Prompt = "" }, true},
		{"postsCount too high", func(r *FormatRequest) { r.PostsCount = 11 }, true},
		{"day out of range", func(r *FormatRequest) { r.PostingRules[0].DayOfWeek = intPtr(7) }, true},
		{"negative day", func(r *FormatRequest) { r.PostingRules[0].DayOfWeek = intPtr(-1) }, true},
		{"bad time", func(r *FormatRequest) { r.PostingRules[0].TimeOfDay = strPtr("25:00") }, true},
		{"no rules is fine", func(r *FormatRequest) { r.PostingRules = nil }, false},
		{"rule without day or time", func(r *FormatRequest) { r.PostingRules[0] = PostingRuleInput{Frequency: 1} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.PostingRules = append([]PostingRuleInput(nil), valid.PostingRules...)
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatCreateDefaultsPostsCount(t *testing.T) {
	svc := NewFormatService(&fakeFormatRepo{}, testLogger())

	format, err := svc.Create(context.Background(), &FormatRequest{
		Name:     "LinkedIn Post",
		Platform: "LinkedIn",
		Prompt:   "transform it",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if format.PostsCount != 1 {
		t.Errorf("postsCount = %d, want default 1", format.PostsCount)
	}
}

func TestFormatUpdateReplacesRules(t *testing.T) {
	repo := &fakeFormatRepo{}
	svc := NewFormatService(repo, testLogger())

	created, err := svc.Create(context.Background(), &FormatRequest{
		Name:     "Newsletter",
		Platform: "Email",
		Prompt:   "newsletter it",
		PostingRules: []PostingRuleInput{
			{Frequency: 1, DayOfWeek: intPtr(2), TimeOfDay: strPtr("08:00")},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &FormatRequest{
		Name:     "Newsletter",
		Platform: "Email",
		Prompt:   "newsletter it harder",
		PostingRules: []PostingRuleInput{
			{Frequency: 2, DayOfWeek: intPtr(4), TimeOfDay: strPtr("16:00")},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.ID != created.ID {
		t.Error("expected the same format ID")
	}
	if len(updated.PostingRules) != 1 || *updated.PostingRules[0].DayOfWeek != 4 {
		t.Errorf("rules = %+v, want the replacement rule only", updated.PostingRules)
	}
	if updated.Prompt != "newsletter it harder" {
		t.Errorf("prompt = %q", updated.Prompt)
	}
}
