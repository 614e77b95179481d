package domain

// Chunk represents a contiguous, overlapping window of a document's extracted
// text. It is the unit of indexing and retrieval: consecutive chunks from the
// same document share a configured number of characters so no semantic unit is
// lost at a boundary.
type Chunk struct {
	// ID is the globally unique identifier for the chunk.
	// IDs are stable once stored and never reused.
	ID string

	// Content is the text content of this chunk.
	Content string

	// Source is the name of the document the chunk was cut from.
	Source string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation used for similarity search.
	// It is produced by exactly one embedding model version; vectors from
	// different versions must never be compared.
	Embedding []float32
}
