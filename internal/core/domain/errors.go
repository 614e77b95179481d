package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input,
	// such as a chunking configuration with overlap >= size.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document format no extractor handles.
	// Ingestion rejects the document without touching the index.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoText indicates a document yielded no extractable text.
	// Ingestion rejects the document without touching the index.
	ErrNoText = errors.New("no text extracted")

	// ErrEmbeddingUnavailable indicates the embedding service cannot be reached
	// or cannot run the model. Fatal for the calling operation; never retried.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationExhausted indicates the generation service rejected the call
	// for rate-limit or quota reasons. Retryable; after retries are exhausted the
	// answering engine converts it into a degraded response.
	ErrGenerationExhausted = errors.New("generation capacity exhausted")

	// ErrGenerationUnavailable indicates the generation service is temporarily
	// unavailable. Retryable; propagates as a server error once retries run out.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrNotAdmin indicates the caller is not permitted to ingest documents.
	ErrNotAdmin = errors.New("administrator privileges required")
)
