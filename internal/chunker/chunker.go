// Package chunker provides fixed-size overlapping text chunking.
package chunker

import (
	"fmt"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 700

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 100

// Chunker splits text into fixed-size windows where consecutive windows
// share exactly the configured overlap (the final window may be shorter).
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options.
// The configuration must satisfy size > 0 and 0 <= overlap < size;
// anything else fails with domain.ErrInvalidInput.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, c.size)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidInput, c.overlap)
	}
	if c.overlap >= c.size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrInvalidInput, c.overlap, c.size)
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split cuts text into chunks. The window starts at offset 0, covers
// [offset, offset+size) and advances by size-overlap until the offset passes
// the end of the text. The union of chunks covers the whole input.
// Empty input produces no chunks.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	step := c.size - c.overlap
	chunks := make([]string, 0, len(text)/step+1)

	for start := 0; start < len(text); start += step {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}

	return chunks
}
