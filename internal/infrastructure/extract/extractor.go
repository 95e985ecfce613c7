package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/arjunkps/docudesk/internal/core/ports"
)

// Extractor dispatches on the declared media type of an upload.
//
// PDF handling reads the container bytes as text. Binary PDFs produce garbage
// or nothing; that is an accepted limitation of this intake path, not a case
// to patch over with a parser. Extraction never fails: every failure path
// degrades to an empty string so the pipeline keeps going.
type Extractor struct {
	ocr    ports.OCREngine
	logger *slog.Logger
}

func NewExtractor(ocr ports.OCREngine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{ocr: ocr, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, filename, mediaType string, data []byte) string {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		text, err := e.ocr.Recognize(ctx, data)
		if err != nil {
			e.logger.Warn("ocr_failed", "file", filename, "error", err)
			return ""
		}
		return text
	case mediaType == "application/pdf":
		return strings.ToValidUTF8(string(data), "")
	case strings.HasPrefix(mediaType, "text/"):
		return string(data)
	default:
		return ""
	}
}
