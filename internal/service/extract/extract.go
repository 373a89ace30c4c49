// Package extract pulls plain text out of uploaded context files.
// Supported inputs are PDF and DOCX, matching what the upload endpoint
// accepts.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"inkwell/internal/domain"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SupportedType reports whether the declared MIME type is one the
// pipeline can extract from.
func SupportedType(mimeType string) bool {
	switch mimeType {
	case MIMEPDF, MIMEDOCX:
		return true
	}
	return false
}

// Text extracts plain text from an uploaded file. The declared MIME
// type picks the parser; the file bytes are sniffed first so a
// mislabeled upload fails with a clear validation error instead of a
// parser panic. Extracted text that collapses to empty is rejected,
// uploads with no usable text would only pollute prompts.
func Text(mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &domain.ValidationError{Message: "empty file"}
	}

	switch mimeType {
	case MIMEPDF:
		if !hasPDFHeader(data) {
			return "", &domain.ValidationError{Message: "file is not a valid PDF"}
		}
		text, err := pdfText(data)
		if err != nil {
			return "", &domain.ValidationError{Message: fmt.Sprintf("failed to extract text from document: %v", err)}
		}
		return requireText(text)
	case MIMEDOCX:
		if !hasZipHeader(data) {
			return "", &domain.ValidationError{Message: "file is not a valid DOCX"}
		}
		text, err := docxText(data)
		if err != nil {
			return "", &domain.ValidationError{Message: fmt.Sprintf("failed to extract text from document: %v", err)}
		}
		return requireText(text)
	default:
		return "", &domain.ValidationError{Message: "only PDF and DOCX files are supported"}
	}
}

func requireText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &domain.ValidationError{Message: "no text content found in document"}
	}
	return text, nil
}

func hasPDFHeader(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func hasZipHeader(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

// docxText reads word/document.xml from the DOCX container and gathers
// the <w:t> text runs.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx container: %w", err)
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx container has no word/document.xml")
	}
	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("docx open: %w", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("docx read: %w", err)
	}
	return collapseWhitespace(textRuns(b)), nil
}

// textRuns decodes the document XML and concatenates the contents of
// every t element, one space between runs.
func textRuns(xmlBytes []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			continue
		}
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String()
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
