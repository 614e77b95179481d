package driven

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// HistoryStore persists question/answer pairs.
// Writes from the answering engine are best-effort: a failed append is logged
// and never affects the caller-visible answer.
type HistoryStore interface {
	// Append stores one chat record.
	Append(ctx context.Context, record domain.ChatRecord) error

	// ListByIdentity returns all records for an identity,
	// ordered by timestamp ascending.
	ListByIdentity(ctx context.Context, identity string) ([]domain.ChatRecord, error)

	// DeleteByIdentity removes all records for an identity.
	DeleteByIdentity(ctx context.Context, identity string) error
}
