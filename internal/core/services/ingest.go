package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/csec-astu/astu-assist/internal/chunker"
	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/core/ports/driving"
	"github.com/csec-astu/astu-assist/internal/extract"
	"github.com/csec-astu/astu-assist/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the document ingestion pipeline.
type IngestService struct {
	extractors *extract.Registry
	chunker    *chunker.Chunker
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	users      driven.UserStore
}

// NewIngestService creates a new ingestion service.
// The user store is optional; without it ingestion is ungated.
func NewIngestService(
	extractors *extract.Registry,
	chunker *chunker.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	users driven.UserStore,
) *IngestService {
	return &IngestService{
		extractors: extractors,
		chunker:    chunker,
		embedder:   embedder,
		index:      index,
		users:      users,
	}
}

// Ingest processes one document end to end: extract, chunk, embed, index.
// All chunks are embedded before anything is written, so a document that
// fails extraction or embedding leaves the index untouched.
func (s *IngestService) Ingest(
	ctx context.Context, raw domain.RawDocument, identity string,
) (*driving.IngestResult, error) {
	if err := s.authorize(ctx, identity); err != nil {
		return nil, err
	}

	extractor, err := s.extractors.ForMIMEType(raw.MIMEType)
	if err != nil {
		return nil, err
	}

	logger.Info("Ingesting %q (%s, %d bytes)", raw.Name, raw.MIMEType, len(raw.Content))

	text, err := extractor.Extract(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", raw.Name, err)
	}

	chunks := s.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %q produced no chunks", domain.ErrNoText, raw.Name)
	}
	logger.Debug("Split %q into %d chunks", raw.Name, len(chunks))

	embeddings, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks of %q: %w", raw.Name, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingUnavailable, len(embeddings), len(chunks))
	}

	// Fresh identifiers per ingestion. Re-ingesting the same document adds
	// a new, disjoint set of chunks rather than replacing the old ones.
	entries := make([]driven.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = driven.IndexEntry{
			ID:        uuid.NewString(),
			Content:   chunk,
			Source:    raw.Name,
			Embedding: embeddings[i],
		}
	}

	if err := s.index.Upsert(ctx, entries); err != nil {
		return nil, fmt.Errorf("indexing chunks of %q: %w", raw.Name, err)
	}

	logger.Info("Ingested %q: %d chunks stored", raw.Name, len(entries))

	return &driving.IngestResult{ChunksStored: len(entries)}, nil
}

// authorize gates ingestion behind the admin flag. While no accounts exist
// the gate stays open so the first index can be built before any user setup.
func (s *IngestService) authorize(ctx context.Context, identity string) error {
	if s.users == nil {
		return nil
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count == 0 {
		return nil
	}

	if identity == "" {
		return fmt.Errorf("%w: ingestion requires an admin identity", domain.ErrNotAdmin)
	}

	user, err := s.users.GetByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown user %q", domain.ErrNotAdmin, identity)
		}
		return fmt.Errorf("looking up user %q: %w", identity, err)
	}
	if !user.IsAdmin {
		return fmt.Errorf("%w: user %q", domain.ErrNotAdmin, identity)
	}

	return nil
}
