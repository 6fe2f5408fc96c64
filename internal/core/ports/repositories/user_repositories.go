package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// UserReader defines read operations for user profiles
type UserReader interface {
	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user profiles
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's profile fields.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
