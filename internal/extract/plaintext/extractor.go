// Package plaintext handles documents that are already plain text.
package plaintext

import (
	"context"
	"fmt"
	"strings"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor passes plain text content through unchanged.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
	}
}

// Extract returns the document bytes as text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	text := strings.TrimSpace(string(raw.Content))
	if text == "" {
		return "", fmt.Errorf("%w: %q is empty", domain.ErrNoText, raw.Name)
	}

	return text, nil
}
