package service

import (
	"testing"
	"time"

	"inkwell/internal/domain/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }

func TestDeriveSchedule(t *testing.T) {
	// Wednesday 2026-08-26 10:30:45 UTC
	now := time.Date(2026, 8, 26, 10, 30, 45, 0, time.UTC)

	tests := []struct {
		name string
		rule *models.PostingRule
		want time.Time
	}{
		{
			name: "no rule schedules tomorrow keeping the clock",
			rule: nil,
			want: time.Date(2026, 8, 27, 10, 30, 45, 0, time.UTC),
		},
		{
			name: "no day preference schedules tomorrow",
			rule: &models.PostingRule{TimeOfDay: strPtr("09:00")},
			want: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "future weekday this week",
			rule: &models.PostingRule{DayOfWeek: intPtr(4), TimeOfDay: strPtr("16:00")}, // Thursday
			want: time.Date(2026, 8, 27, 16, 0, 0, 0, time.UTC),
		},
		{
			name: "past weekday rolls to next week",
			rule: &models.PostingRule{DayOfWeek: intPtr(2), TimeOfDay: strPtr("08:00")}, // Tuesday
			want: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "same day schedules a full week out",
			rule: &models.PostingRule{DayOfWeek: intPtr(3), TimeOfDay: strPtr("08:00")}, // Wednesday
			want: time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "day rule without time keeps the clock",
			rule: &models.PostingRule{DayOfWeek: intPtr(5)}, // Friday
			want: time.Date(2026, 8, 28, 10, 30, 45, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSchedule(tt.rule, now)
			if !got.Equal(tt.want) {
				t.Errorf("DeriveSchedule = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveScheduleZeroesSeconds(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 30, 45, 123456, time.UTC)
	rule := &models.PostingRule{TimeOfDay: strPtr("14:05")}

	got := DeriveSchedule(rule, now)
	if got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected zeroed seconds, got %v", got)
	}
	if got.Hour() != 14 || got.Minute() != 5 {
		t.Errorf("expected 14:05, got %v", got)
	}
}

func TestDeriveScheduleBadTimeKeepsClock(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 30, 45, 0, time.UTC)
	rule := &models.PostingRule{TimeOfDay: strPtr("not-a-time")}

	got := DeriveSchedule(rule, now)
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("expected clock carried from now, got %v", got)
	}
}
