package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// It is used both at ingestion time (chunk embeddings) and at query time
// (question embeddings), so implementations must be safe for concurrent use.
//
// The loaded model is a process-wide singleton: initialise once at startup,
// treat as read-only thereafter. Vectors are only comparable when produced by
// the same model version; ModelName is the version-relevant identity.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local inference servers with OpenAI-compatible APIs (all-minilm et al.)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// The result is ordered one-to-one with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// This is determined by the model and must match the vector index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
