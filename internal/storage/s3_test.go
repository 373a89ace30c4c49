package storage

import (
	"strings"
	"testing"
	"time"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.UnixMilli(1724800000000)

	tests := []struct {
		name     string
		filename string
		folder   string
		want     string
	}{
		{"default folder", "report.pdf", "", "context/1724800000000_report.pdf"},
		{"explicit folder", "report.pdf", "brand", "brand/1724800000000_report.pdf"},
		{"spaces and symbols", "q3 report (final).pdf", "", "context/1724800000000_q3_report__final_.pdf"},
		{"unicode", "résumé.docx", "", "context/1724800000000_r_sum_.docx"},
		{"dots and dashes kept", "a-b.c.pdf", "", "context/1724800000000_a-b.c.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildObjectKey(tt.filename, tt.folder, now); got != tt.want {
				t.Errorf("BuildObjectKey(%q, %q) = %q, want %q", tt.filename, tt.folder, got, tt.want)
			}
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		host   string
		secure bool
	}{
		{"https://s3.wasabisys.com", "s3.wasabisys.com", true},
		{"http://localhost:9000", "localhost:9000", false},
		{"s3.us-east-1.wasabisys.com", "s3.us-east-1.wasabisys.com", true},
	}

	for _, tt := range tests {
		host, secure := splitEndpoint(tt.in)
		if host != tt.host || secure != tt.secure {
			t.Errorf("splitEndpoint(%q) = (%q, %v), want (%q, %v)", tt.in, host, secure, tt.host, tt.secure)
		}
	}
}

func TestBuildObjectKeyUnsafeChars(t *testing.T) {
	key := BuildObjectKey("../../etc/passwd", "", time.UnixMilli(1))
	if strings.Contains(key, "/etc/") {
		t.Errorf("expected path separators sanitized, got %q", key)
	}
	if key != "context/1_.._.._etc_passwd" {
		t.Errorf("got %q", key)
	}
}
