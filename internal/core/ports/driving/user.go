package driving

import (
	"context"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

// UserService manages local accounts.
type UserService interface {
	// Create adds a new user. The username must be unused.
	Create(ctx context.Context, username string, admin bool) (*domain.User, error)

	// Promote grants the admin flag to an existing user.
	Promote(ctx context.Context, username string) error

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// IsAdmin reports whether the username belongs to an administrator.
	IsAdmin(ctx context.Context, username string) (bool, error)
}
