package extract

import (
	"context"
	"errors"
	"testing"
)

type ocrFake struct {
	text string
	err  error
}

func (f *ocrFake) Recognize(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func TestExtractImageUsesOCR(t *testing.T) {
	e := NewExtractor(&ocrFake{text: "scanned text"}, nil)

	got := e.Extract(context.Background(), "scan.png", "image/png", []byte{0x89, 0x50})
	if got != "scanned text" {
		t.Fatalf("Extract() = %q, want scanned text", got)
	}
}

func TestExtractImageOCRFailureDegradesToEmpty(t *testing.T) {
	e := NewExtractor(&ocrFake{err: errors.New("boom")}, nil)

	got := e.Extract(context.Background(), "scan.png", "image/png", []byte{0x89})
	if got != "" {
		t.Fatalf("Extract() = %q, want empty string on OCR failure", got)
	}
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(&ocrFake{}, nil)

	got := e.Extract(context.Background(), "note.txt", "text/plain", []byte("hello world"))
	if got != "hello world" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtractPDFStripsInvalidUTF8(t *testing.T) {
	e := NewExtractor(&ocrFake{}, nil)

	got := e.Extract(context.Background(), "doc.pdf", "application/pdf", []byte{'p', 'd', 0xff, 'f'})
	if got != "pdf" {
		t.Fatalf("Extract() = %q, want pdf", got)
	}
}

func TestExtractUnknownMediaType(t *testing.T) {
	e := NewExtractor(&ocrFake{text: "should not be used"}, nil)

	got := e.Extract(context.Background(), "archive.zip", "application/zip", []byte("binary"))
	if got != "" {
		t.Fatalf("Extract() = %q, want empty string", got)
	}
}
