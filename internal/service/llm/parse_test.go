package llm

import (
	"testing"
)

func TestParseStructured(t *testing.T) {
	type suggestion struct {
		Content string  `json:"content"`
		Score   float64 `json:"relevanceScore"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "clean JSON",
			raw:  `{"content":"add a story","relevanceScore":0.9}`,
			want: "add a story",
		},
		{
			name: "fenced JSON",
			raw:  "```json\n{\"content\":\"add a story\"}\n```",
			want: "add a story",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"content\":\"add a story\"}\n```",
			want: "add a story",
		},
		{
			name: "surrounding prose",
			raw:  "Sure! Here's your suggestion:\n{\"content\":\"add a story\"}\nHope that helps.",
			want: "add a story",
		},
		{
			name:    "no JSON at all",
			raw:     "I can't help with that.",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			raw:     `{"content":"add a st`,
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got suggestion
			err := ParseStructured(tt.raw, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStructured: %v", err)
			}
			if got.Content != tt.want {
				t.Errorf("content = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

func TestParseStructuredArray(t *testing.T) {
	var ideas []string
	raw := "Here are the ideas:\n```json\n[\"idea one\", \"idea two\"]\n```"

	if err := ParseStructured(raw, &ideas); err != nil {
		t.Fatalf("ParseStructured: %v", err)
	}
	if len(ideas) != 2 || ideas[0] != "idea one" {
		t.Errorf("ideas = %v", ideas)
	}
}
