package driven

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// TextExtractor converts raw document bytes into plain text.
// Each extractor handles specific MIME types (e.g., PDF, plain text).
type TextExtractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Extract returns the document's plain text content.
	// A document that yields no text fails with domain.ErrNoText.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}
