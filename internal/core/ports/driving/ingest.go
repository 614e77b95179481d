package driving

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// IngestService pushes documents through the ingestion pipeline:
// format validation, text extraction, chunking, batch embedding and
// index insertion.
type IngestService interface {
	// Ingest processes one document. A document that fails extraction or
	// embedding is not partially stored: either all of its chunks reach the
	// index or none do. Re-ingesting a document with the same name creates a
	// fresh, disjoint set of chunks; it does not replace the prior ingestion.
	//
	// identity attributes the upload and gates it: once any user account
	// exists, only administrators may ingest.
	Ingest(ctx context.Context, raw domain.RawDocument, identity string) (*IngestResult, error)
}

// IngestResult reports what an ingestion stored.
type IngestResult struct {
	// ChunksStored is the number of chunks written to the vector index.
	ChunksStored int
}
