package services

import (
	"context"
	"fmt"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes per-identity chat history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the identity's records, oldest first.
func (s *HistoryService) List(ctx context.Context, identity string) ([]domain.ChatRecord, error) {
	if identity == "" {
		return nil, fmt.Errorf("%w: identity is required", domain.ErrInvalidInput)
	}
	return s.store.ListByIdentity(ctx, identity)
}

// Clear removes all records for the identity.
func (s *HistoryService) Clear(ctx context.Context, identity string) error {
	if identity == "" {
		return fmt.Errorf("%w: identity is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteByIdentity(ctx, identity)
}
