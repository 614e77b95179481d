package driving

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// HistoryService exposes a caller's chat history.
type HistoryService interface {
	// List returns the identity's records ordered by timestamp ascending.
	List(ctx context.Context, identity string) ([]domain.ChatRecord, error)

	// Clear removes all records for the identity.
	Clear(ctx context.Context, identity string) error
}
