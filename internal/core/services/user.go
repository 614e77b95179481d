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

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService manages local accounts.
type UserService struct {
	store driven.UserStore
}

// NewUserService creates a new user service.
func NewUserService(store driven.UserStore) *UserService {
	return &UserService{store: store}
}

// Create adds a new user with a unique username.
func (s *UserService) Create(ctx context.Context, username string, admin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %s", domain.ErrAlreadyExists, username)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking username %q: %w", username, err)
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		IsAdmin:   admin,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user %q: %w", username, err)
	}

	logger.Info("Created user %q (admin: %t)", username, admin)

	return &user, nil
}

// Promote grants the admin flag to an existing user.
func (s *UserService) Promote(ctx context.Context, username string) error {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return nil
	}

	user.IsAdmin = true
	if err := s.store.Save(ctx, *user); err != nil {
		return fmt.Errorf("promoting user %q: %w", username, err)
	}

	logger.Info("Promoted user %q to admin", username)

	return nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.List(ctx)
}

// IsAdmin reports whether the username belongs to an administrator.
// Unknown usernames are simply not administrators.
func (s *UserService) IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
