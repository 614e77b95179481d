package services

import (
	"context"
	"sync"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
)

// mockEmbedder implements driven.EmbeddingService.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) ([]float32, error)
	batchFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{1, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.batchFn != nil {
		return m.batchFn(ctx, texts)
	}
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{1, 0}
	}
	return embeddings, nil
}

func (m *mockEmbedder) Dimensions() int   { return 2 }
func (m *mockEmbedder) ModelName() string { return "mock-embedder" }
func (m *mockEmbedder) Close() error      { return nil }

// mockIndex implements driven.VectorIndex with in-memory entry tracking.
type mockIndex struct {
	mu        sync.Mutex
	entries   []driven.IndexEntry
	queryFn   func(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error)
	upsertErr error
	count     int
	countSet  bool
}

func (m *mockIndex) Upsert(_ context.Context, entries []driven.IndexEntry) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockIndex) Query(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, vector, k)
	}
	return []driven.VectorHit{}, nil
}

func (m *mockIndex) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countSet {
		return m.count, nil
	}
	return len(m.entries), nil
}

func (m *mockIndex) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func (m *mockIndex) Close() error { return nil }

func (m *mockIndex) stored() []driven.IndexEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]driven.IndexEntry(nil), m.entries...)
}

// mockGenerator implements driven.GenerationService.
type mockGenerator struct {
	mu      sync.Mutex
	prompts []string
	fn      func(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(ctx, prompt, opts)
	}
	return "generated answer", nil
}

func (m *mockGenerator) ModelName() string { return "mock-generator" }
func (m *mockGenerator) Close() error      { return nil }

func (m *mockGenerator) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// mockHistoryStore implements driven.HistoryStore.
type mockHistoryStore struct {
	mu        sync.Mutex
	records   []domain.ChatRecord
	appendErr error
	deleted   []string
}

func (m *mockHistoryStore) Append(_ context.Context, record domain.ChatRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockHistoryStore) ListByIdentity(_ context.Context, identity string) ([]domain.ChatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ChatRecord
	for _, r := range m.records {
		if r.Identity == identity {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockHistoryStore) DeleteByIdentity(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, identity)
	kept := m.records[:0]
	for _, r := range m.records {
		if r.Identity != identity {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *mockHistoryStore) saved() []domain.ChatRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatRecord(nil), m.records...)
}

// mockUserStore implements driven.UserStore over a map.
type mockUserStore struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMockUserStore(users ...domain.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]domain.User)}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserStore) Save(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (m *mockUserStore) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// mockExtractor implements driven.TextExtractor for a single MIME type.
type mockExtractor struct {
	mime string
	text string
	err  error
}

func (m *mockExtractor) SupportedMIMETypes() []string { return []string{m.mime} }

func (m *mockExtractor) Extract(_ context.Context, _ *domain.RawDocument) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}
