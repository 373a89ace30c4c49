package seed

import (
	"testing"
)

func TestDefaultFormats(t *testing.T) {
	formats, err := DefaultFormats()
	if err != nil {
		t.Fatalf("DefaultFormats: %v", err)
	}
	if len(formats) != 4 {
		t.Fatalf("expected 4 default formats, got %d", len(formats))
	}

	byName := make(map[string]int)
	for i, f := range formats {
		byName[f.Name] = i
		if f.Platform == "" || f.Prompt == "" {
			t.Errorf("format %q missing platform or prompt", f.Name)
		}
		if f.PostsCount < 1 {
			t.Errorf("format %q has postsCount %d", f.Name, f.PostsCount)
		}
		if len(f.PostingRules) == 0 {
			t.Errorf("format %q has no posting rules", f.Name)
		}
	}

	for _, want := range []string{"LinkedIn Post", "X (Twitter) Thread", "Newsletter", "YouTube Script"} {
		if _, ok := byName[want]; !ok {
			t.Errorf("missing default format %q", want)
		}
	}

	newsletter := formats[byName["Newsletter"]]
	rule := newsletter.PostingRules[0]
	if rule.DayOfWeek == nil || *rule.DayOfWeek != 2 {
		t.Error("expected newsletter scheduled on Tuesday")
	}
	if rule.TimeOfDay == nil || *rule.TimeOfDay != "08:00" {
		t.Error("expected newsletter scheduled at 08:00")
	}

	linkedin := formats[byName["LinkedIn Post"]]
	if linkedin.PostingRules[0].DayOfWeek != nil {
		t.Error("expected linkedin rule without a fixed day")
	}
}
