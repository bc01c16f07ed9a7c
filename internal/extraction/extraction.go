// Package extraction turns an uploaded PDF into plain text by shelling out
// to pdftotext.
//
// The extractor is deliberately opaque to the rest of the system: bytes in,
// concatenated page text out, with pages separated by a blank line. Callers
// treat any failure as a single ExtractionError-style condition and abort the
// ingest flow; no partial material is created from partial text.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable indicates the pdftotext binary could not be found.
var ErrUnavailable = errors.New("extraction: pdftotext not found in PATH")

// Extractor converts a PDF file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Pdftotext extracts text with the poppler pdftotext utility.
type Pdftotext struct {
	binary string
}

// NewPdftotext constructs an extractor around the given executable name or
// path; an empty name means "pdftotext" resolved from PATH.
func NewPdftotext(binary string) *Pdftotext {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "pdftotext"
	}
	return &Pdftotext{binary: binary}
}

// Extract runs pdftotext against the file and returns the document text with
// a blank line between pages.
func (e *Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(e.binary); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("extraction: pdftotext failed: %s: %w", detail, err)
		}
		return "", fmt.Errorf("extraction: pdftotext failed: %w", err)
	}

	return joinPages(stdout.String()), nil
}

// joinPages converts pdftotext's form-feed page delimiters into a single
// blank line between pages and trims ragged page edges.
func joinPages(raw string) string {
	pages := strings.Split(raw, "\f")
	cleaned := make([]string, 0, len(pages))
	for _, page := range pages {
		page = strings.Trim(page, "\n")
		if page == "" {
			continue
		}
		cleaned = append(cleaned, page)
	}
	return strings.Join(cleaned, "\n\n")
}
