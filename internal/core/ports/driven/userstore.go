package driven

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// UserStore persists local accounts.
type UserStore interface {
	// Save inserts or updates a user. Usernames are unique.
	Save(ctx context.Context, user domain.User) error

	// GetByUsername returns the user with the given username,
	// or domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}
