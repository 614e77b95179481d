package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
)

func hitsIndex(hits []driven.VectorHit) *mockIndex {
	return &mockIndex{
		count:    len(hits),
		countSet: true,
		queryFn: func(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
			return hits, nil
		},
	}
}

func TestAnswer_EmptyIndexAnswersDirectly(t *testing.T) {
	generator := &mockGenerator{}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, nil, 0)

	answer, err := svc.Answer(context.Background(), "what is ASTU?", "")
	require.NoError(t, err)

	assert.Equal(t, "generated answer", answer.Answer)
	assert.Equal(t, 0, answer.ChunksUsed)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0.0, answer.Confidence)
	assert.Regexp(t, `^\d+\.\d{2}s$`, answer.ProcessTime)

	// Direct template: no context section, persona still present.
	prompt := generator.lastPrompt()
	assert.Contains(t, prompt, "CSEC_ASTU AI ASSISTANT")
	assert.Contains(t, prompt, "Answer the following question directly.")
	assert.NotContains(t, prompt, "Context:")
}

func TestAnswer_GroundedInRetrievedContext(t *testing.T) {
	index := hitsIndex([]driven.VectorHit{
		{ID: "a", Content: "chunk one", Source: "doc.pdf", Distance: 0.2},
		{ID: "b", Content: "chunk two", Source: "doc.pdf", Distance: 0.4},
		{ID: "c", Content: "chunk three", Source: "other.pdf", Distance: 0.5},
	})
	generator := &mockGenerator{}
	svc := NewAnswerService(&mockEmbedder{}, index, generator, nil, 0)

	answer, err := svc.Answer(context.Background(), "question", "")
	require.NoError(t, err)

	assert.Equal(t, 3, answer.ChunksUsed)
	// confidence = 1 - min(distance) = 0.8, rounded to 3 decimals.
	assert.Equal(t, 0.8, answer.Confidence)
	// Duplicate source names collapse.
	assert.ElementsMatch(t, []string{"doc.pdf", "other.pdf"}, answer.Sources)

	prompt := generator.lastPrompt()
	assert.Contains(t, prompt, "Context:")
	assert.Contains(t, prompt, "chunk one\n\nchunk two\n\nchunk three")
	assert.Contains(t, prompt, "Question:\nquestion")
}

func TestAnswer_ConfidenceRounding(t *testing.T) {
	index := hitsIndex([]driven.VectorHit{
		{ID: "a", Content: "chunk", Source: "doc.pdf", Distance: 0.123456},
	})
	svc := NewAnswerService(&mockEmbedder{}, index, &mockGenerator{}, nil, 0)

	answer, err := svc.Answer(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, 0.877, answer.Confidence)
}

func TestAnswer_TrimsGeneratedText(t *testing.T) {
	generator := &mockGenerator{
		fn: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			return "\n  the answer \n\n", nil
		},
	}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, nil, 0)

	answer, err := svc.Answer(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer.Answer)
}

func TestAnswer_UsesFixedSamplingConfig(t *testing.T) {
	var got driven.GenerateOptions
	generator := &mockGenerator{
		fn: func(_ context.Context, _ string, opts driven.GenerateOptions) (string, error) {
			got = opts
			return "ok", nil
		},
	}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, nil, 0)

	_, err := svc.Answer(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got.Temperature)
	assert.Equal(t, 0.9, got.TopP)
}

func TestAnswer_ExhaustionDegradesGracefully(t *testing.T) {
	generator := &mockGenerator{
		fn: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			return "", domain.ErrGenerationExhausted
		},
	}
	history := &mockHistoryStore{}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, history, 0)

	answer, err := svc.Answer(context.Background(), "q", "alice")
	require.NoError(t, err)

	assert.Equal(t, busyMessage, answer.Answer)
	assert.Equal(t, 0.0, answer.Confidence)
	assert.Equal(t, 0, answer.ChunksUsed)
	assert.Empty(t, answer.Sources)
	assert.True(t, strings.HasSuffix(answer.ProcessTime, "s (failed)"), "got %q", answer.ProcessTime)

	// Degraded exchanges are not recorded.
	assert.Empty(t, history.saved())
}

func TestAnswer_UnavailableAfterRetriesPropagates(t *testing.T) {
	generator := &mockGenerator{
		fn: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			return "", domain.ErrGenerationUnavailable
		},
	}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, nil, 0)

	_, err := svc.Answer(context.Background(), "q", "")
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestAnswer_FatalGenerationErrorPropagates(t *testing.T) {
	generator := &mockGenerator{
		fn: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			return "", errors.New("invalid argument")
		},
	}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, generator, nil, 0)

	_, err := svc.Answer(context.Background(), "q", "")
	assert.Error(t, err)
}

func TestAnswer_EmbeddingFailurePropagates(t *testing.T) {
	index := &mockIndex{count: 1, countSet: true}
	embedder := &mockEmbedder{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return nil, domain.ErrEmbeddingUnavailable
		},
	}
	svc := NewAnswerService(embedder, index, &mockGenerator{}, nil, 0)

	_, err := svc.Answer(context.Background(), "q", "")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestAnswer_SavesHistoryWithIdentity(t *testing.T) {
	history := &mockHistoryStore{}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, &mockGenerator{}, history, 0)

	_, err := svc.Answer(context.Background(), "the question", "alice")
	require.NoError(t, err)

	records := history.saved()
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Identity)
	assert.Equal(t, "the question", records[0].Question)
	assert.Equal(t, "generated answer", records[0].Answer)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestAnswer_HistoryFailureDoesNotAffectAnswer(t *testing.T) {
	history := &mockHistoryStore{appendErr: errors.New("database locked")}
	svc := NewAnswerService(&mockEmbedder{}, &mockIndex{}, &mockGenerator{}, history, 0)

	answer, err := svc.Answer(context.Background(), "q", "alice")
	require.NoError(t, err)
	assert.Equal(t, "generated answer", answer.Answer)
}

func TestDedupeSources(t *testing.T) {
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, dedupeSources([]string{"a.pdf", "b.pdf", "a.pdf", ""}))
	assert.Empty(t, dedupeSources(nil))
}
