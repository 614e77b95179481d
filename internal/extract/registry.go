package extract

import (
	"fmt"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
)

// Registry maps MIME types to extractors.
type Registry struct {
	byMIME map[string]driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors.
// When two extractors claim the same MIME type, the later one wins.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byMIME: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, mime := range e.SupportedMIMETypes() {
			r.byMIME[mime] = e
		}
	}
	return r
}

// ForMIMEType returns the extractor for a MIME type,
// or domain.ErrUnsupportedFormat.
func (r *Registry) ForMIMEType(mime string) (driven.TextExtractor, error) {
	e, ok := r.byMIME[mime]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mime)
	}
	return e, nil
}

// SupportedMIMETypes returns every MIME type the registry accepts.
func (r *Registry) SupportedMIMETypes() []string {
	mimes := make([]string, 0, len(r.byMIME))
	for mime := range r.byMIME {
		mimes = append(mimes, mime)
	}
	return mimes
}
