package driven

import "context"

// VectorIndex is the persistent nearest-neighbour store for chunk embeddings.
// State survives process restarts; the backing storage location is adapter
// configuration, not core logic.
//
// The index is shared by all requests and must be safe for concurrent reads.
// Writes are infrequent (ingestion only) and may serialise with reads at the
// storage layer's discretion.
type VectorIndex interface {
	// Upsert inserts all given entries. Idempotent per ID: re-upserting an
	// existing ID replaces the stored entry. A batch should apply entirely
	// or not at all; see the adapter documentation for what the backend
	// actually guarantees.
	Upsert(ctx context.Context, entries []IndexEntry) error

	// Query returns up to k nearest entries by cosine distance, ordered by
	// ascending distance (closest first). An empty index yields an empty
	// result, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Reset drops the entire collection. There is no per-chunk deletion.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// IndexEntry is one persisted (chunk, vector) tuple.
// Entries are created during ingestion and never mutated.
type IndexEntry struct {
	// ID is the chunk identifier.
	ID string

	// Embedding is the chunk's vector representation.
	Embedding []float32

	// Content is the chunk text.
	Content string

	// Source is the originating document name.
	Source string
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ID is the matched chunk.
	ID string

	// Content is the matched chunk's text.
	Content string

	// Source is the originating document name.
	Source string

	// Distance is the cosine distance to the query (lower = more similar).
	Distance float64
}
