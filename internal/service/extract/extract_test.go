package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/domain"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestSupportedType(t *testing.T) {
	tests := []struct {
		mime string
		want bool
	}{
		{MIMEPDF, true},
		{MIMEDOCX, true},
		{"text/plain", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := SupportedType(tt.mime); got != tt.want {
			t.Errorf("SupportedType(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}

func TestTextDOCX(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>
    <w:p><w:r><w:t>second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`

	got, err := Text(MIMEDOCX, buildDOCX(t, docXML))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "Hello world second paragraph" {
		t.Errorf("extracted %q", got)
	}
}

func TestTextDOCXNoText(t *testing.T) {
	docXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body></w:body></w:document>`

	_, err := Text(MIMEDOCX, buildDOCX(t, docXML))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no text content") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestTextRejections(t *testing.T) {
	tests := []struct {
		name string
		mime string
		data []byte
		want string
	}{
		{"empty file", MIMEPDF, nil, "empty file"},
		{"unsupported type", "text/plain", []byte("hi"), "only PDF and DOCX"},
		{"mislabeled pdf", MIMEPDF, []byte("not a pdf at all"), "not a valid PDF"},
		{"mislabeled docx", MIMEDOCX, []byte("not a zip at all"), "not a valid DOCX"},
		{"truncated docx container", MIMEDOCX, []byte{'P', 'K', 3, 4, 0, 0}, "failed to extract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(tt.mime, tt.data)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected message containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := collapseWhitespace("  a\n\nb\tc d  ")
	if got != "a b c d" {
		t.Errorf("collapseWhitespace = %q", got)
	}
}
