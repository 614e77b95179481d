// Package chromem provides a persistent vector index backed by chromem-go.
//
// chromem-go is an embeddable vector database: pure Go, no external service,
// persistence to gob files under a configurable directory. The index is
// opened once at startup and shared read-mostly by all requests.
package chromem

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorIndex = (*Store)(nil)

// DefaultCollection is the default collection base name.
const DefaultCollection = "documents"

// sourceMetadataKey is the metadata key carrying the document name.
const sourceMetadataKey = "source"

// Config holds configuration for the chromem store.
type Config struct {
	// Path is the directory for persistent storage (required).
	Path string

	// Collection is the collection base name (default: "documents").
	Collection string

	// EmbeddingModel is the identity of the model that produced the stored
	// vectors. It becomes part of the collection name, so indexes built with
	// different models never share a vector space.
	EmbeddingModel string

	// Compress enables gzip compression for stored data.
	Compress bool
}

// Store is a persistent nearest-neighbour index over chunk embeddings.
// All entries carry precomputed vectors; the store never embeds text itself.
type Store struct {
	db   *chromemgo.DB
	name string

	// mu guards the collection pointer, which is swapped on Reset.
	mu         sync.RWMutex
	collection *chromemgo.Collection
}

// NewStore opens (or creates) a persistent vector index.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("chromem: storage path is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	if err := os.MkdirAll(cfg.Path, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := chromemgo.NewPersistentDB(cfg.Path, cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("opening chromem DB: %w", err)
	}

	s := &Store{
		db:   db,
		name: collectionName(cfg.Collection, cfg.EmbeddingModel),
	}

	collection, err := db.GetOrCreateCollection(s.name, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", s.name, err)
	}
	s.collection = collection

	logger.Debug("Vector index ready: collection=%s path=%s entries=%d", s.name, cfg.Path, collection.Count())

	return s, nil
}

// collectionName appends the embedding model identity to the base name so
// that vectors from different model versions are never compared.
func collectionName(base, model string) string {
	if model == "" {
		return base
	}
	sanitised := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, model)
	return base + "-" + sanitised
}

// rejectEmbedding is installed as the collection's embedding function.
// Every entry arrives with a precomputed vector and queries go through
// QueryEmbedding, so this should never run.
func rejectEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("chromem: index only accepts precomputed embeddings")
}

// Upsert inserts all given entries. Re-upserting an ID replaces the stored
// entry, so the operation is idempotent per identifier. chromem applies
// documents one by one; a batch that fails midway may leave earlier entries
// stored, which callers avoid by embedding everything before upserting.
func (s *Store) Upsert(ctx context.Context, entries []driven.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("chromem: entry %d has no ID", i)
		}
		if len(entry.Embedding) == 0 {
			return fmt.Errorf("chromem: entry %s has no embedding", entry.ID)
		}
		docs[i] = chromemgo.Document{
			ID:        entry.ID,
			Content:   entry.Content,
			Embedding: entry.Embedding,
			Metadata:  map[string]string{sourceMetadataKey: entry.Source},
		}
	}

	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	// Concurrency of 1: embeddings are precomputed, nothing to parallelise.
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}

	return nil
}

// Query returns up to k nearest entries by ascending cosine distance.
// An empty index yields an empty result.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("chromem: k must be positive, got %d", k)
	}

	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	// chromem requires nResults <= stored count.
	count := collection.Count()
	if count == 0 {
		return []driven.VectorHit{}, nil
	}
	if k > count {
		k = count
	}

	results, err := collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", s.name, err)
	}

	// chromem returns cosine similarity, highest first; distance is its
	// complement, so the order is already ascending.
	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{
			ID:       r.ID,
			Content:  r.Content,
			Source:   r.Metadata[sourceMetadataKey],
			Distance: 1 - float64(r.Similarity),
		}
	}

	return hits, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Count(), nil
}

// Reset drops the entire collection and recreates it empty.
// This is the only deletion operation the index exposes.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", s.name, err)
	}

	collection, err := s.db.GetOrCreateCollection(s.name, nil, rejectEmbedding)
	if err != nil {
		return fmt.Errorf("recreating collection %s: %w", s.name, err)
	}
	s.collection = collection

	logger.Info("Vector index reset: collection=%s", s.name)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	// chromem persists on write; nothing to flush.
	return nil
}
