package extraction_test

import (
	"context"
	"errors"
	"testing"

	"studydeck/internal/extraction"
	"studydeck/internal/testsupport"
)

func TestExtractJoinsPagesWithBlankLine(t *testing.T) {
	testsupport.StubBinary(t, "pdftotext", `printf 'page one\nline two\n\fpage two\n\f'`)

	extractor := extraction.NewPdftotext("")
	text, err := extractor.Extract(context.Background(), "/tmp/fake.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := "page one\nline two\n\npage two"
	if text != want {
		t.Fatalf("unexpected text:\nwant %q\ngot  %q", want, text)
	}
}

func TestExtractFailsWhenBinaryMissing(t *testing.T) {
	extractor := extraction.NewPdftotext("definitely-not-a-real-binary-name")
	if _, err := extractor.Extract(context.Background(), "x.pdf"); !errors.Is(err, extraction.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestExtractSurfacesToolFailure(t *testing.T) {
	testsupport.StubBinary(t, "pdftotext", `echo 'Syntax Error: bad xref' >&2; exit 1`)

	extractor := extraction.NewPdftotext("")
	_, err := extractor.Extract(context.Background(), "broken.pdf")
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
}
