package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/core/ports/driving"
	"github.com/csec-astu/astu-assist/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// Sampling configuration for answering. Low temperature and high top-p
// favor determinism over creativity.
const (
	answerTemperature = 0.2
	answerTopP        = 0.9
)

// personaPreamble fixes the assistant's voice on every prompt variant.
const personaPreamble = `You are the CSEC_ASTU AI ASSISTANT.
- Provide CONCISE and DIRECT answers.
- Do NOT start responses with "Hello! I am..." or similar introductions unless explicitly asked who you are.
- Prioritize information from the provided context.
- If the answer is in the document, state it immediately.
- If it's general knowledge, keep it brief and relevant to CSEC ASTU.
- Be professional and technical.`

// busyMessage is returned instead of an answer when generation capacity
// stays exhausted through all retries.
const busyMessage = "The AI service is currently busy. Please try again in 30 seconds."

// AnswerService runs the retrieval-augmented answering pipeline.
type AnswerService struct {
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	generator driven.GenerationService
	history   driven.HistoryStore
	topK      int
}

// NewAnswerService creates a new answering service.
// The history store is optional; without it exchanges are not persisted.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	generator driven.GenerationService,
	history driven.HistoryStore,
	topK int,
) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{
		embedder:  embedder,
		index:     index,
		generator: generator,
		history:   history,
		topK:      topK,
	}
}

// Answer runs the full pipeline for one question: retrieve context from the
// index when it has any, score confidence, assemble the prompt, generate.
//
// Capacity exhaustion that survives the generator's retries does not error:
// it degrades into an Answer carrying a fixed busy message. Every call
// re-embeds and re-queries; identical questions are not cached.
func (s *AnswerService) Answer(ctx context.Context, question, identity string) (*domain.Answer, error) {
	start := time.Now()

	retrieved, err := s.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(question, retrieved.context)
	logger.Debug("Generating answer (context: %t, chunks: %d)", retrieved.context != "", len(retrieved.chunks))

	text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: answerTemperature,
		TopP:        answerTopP,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGenerationExhausted) {
			logger.Warn("Generation capacity exhausted, returning degraded answer: %v", err)
			return &domain.Answer{
				Question:    question,
				Answer:      busyMessage,
				Sources:     []string{},
				Confidence:  0.0,
				ChunksUsed:  0,
				ProcessTime: fmt.Sprintf("%.2fs (failed)", time.Since(start).Seconds()),
			}, nil
		}
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	answer := &domain.Answer{
		Question:    question,
		Answer:      strings.TrimSpace(text),
		Sources:     dedupeSources(retrieved.sources),
		Confidence:  domain.RoundConfidence(retrieved.confidence),
		ChunksUsed:  len(retrieved.chunks),
		ProcessTime: fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
	}

	s.saveHistory(ctx, identity, answer)

	return answer, nil
}

// retrieval holds the context gathered for one question.
type retrieval struct {
	chunks     []string
	sources    []string
	context    string
	confidence float64
}

// retrieve embeds the question and queries the index for the nearest chunks.
// An empty index short-circuits to an empty retrieval.
func (s *AnswerService) retrieve(ctx context.Context, question string) (*retrieval, error) {
	count, err := s.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting index entries: %w", err)
	}
	if count == 0 {
		logger.Debug("Index is empty, answering without context")
		return &retrieval{}, nil
	}

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	hits, err := s.index.Query(ctx, vector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	if len(hits) == 0 {
		return &retrieval{}, nil
	}

	r := &retrieval{
		chunks:  make([]string, len(hits)),
		sources: make([]string, len(hits)),
	}
	minDistance := hits[0].Distance
	for i, hit := range hits {
		r.chunks[i] = hit.Content
		r.sources[i] = hit.Source
		if hit.Distance < minDistance {
			minDistance = hit.Distance
		}
	}
	r.context = strings.TrimSpace(strings.Join(r.chunks, "\n\n"))
	r.confidence = 1 - minDistance

	logger.Debug("Retrieved %d chunks, confidence %.3f", len(hits), r.confidence)

	return r, nil
}

// buildPrompt selects the grounded or direct template based on whether any
// context was retrieved. Both carry the persona preamble.
func buildPrompt(question, contextText string) string {
	if contextText != "" {
		return fmt.Sprintf(`%s
Use the following context from an uploaded document to answer the question.
If the answer is not in the context, but you know it because it's about ASTU or general knowledge, you may still answer but mention that it wasn't in the specific document.

Context:
%s

Question:
%s
`, personaPreamble, contextText, question)
	}

	return fmt.Sprintf(`%s
Answer the following question directly.

Question:
%s
`, personaPreamble, question)
}

// dedupeSources collapses duplicate document names. Order is not guaranteed
// at the API boundary; first occurrence order is kept for stable output.
func dedupeSources(sources []string) []string {
	seen := make(map[string]bool, len(sources))
	deduped := make([]string, 0, len(sources))
	for _, source := range sources {
		if source == "" || seen[source] {
			continue
		}
		seen[source] = true
		deduped = append(deduped, source)
	}
	return deduped
}

// saveHistory persists the exchange best-effort. A failed write is logged
// and never affects the caller-visible answer.
func (s *AnswerService) saveHistory(ctx context.Context, identity string, answer *domain.Answer) {
	if s.history == nil {
		return
	}

	err := s.history.Append(ctx, domain.ChatRecord{
		ID:        uuid.NewString(),
		Identity:  identity,
		Question:  answer.Question,
		Answer:    answer.Answer,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to save chat history: %v", err)
	}
}
