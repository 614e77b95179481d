package driving

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// AnswerService answers free-text questions, grounding them in retrieved
// context when the index has any.
type AnswerService interface {
	// Answer runs the retrieve → score → prompt → generate pipeline.
	//
	// identity is optional; it only attributes the persisted history entry
	// and never alters retrieval or generation. Generation capacity
	// exhaustion does not error: it yields a degraded Answer carrying a
	// fixed busy message, zero confidence and a failure-marked timing.
	Answer(ctx context.Context, question, identity string) (*domain.Answer, error)
}
