package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// UserSvcFacade manages the profile stored for an authenticated subject
type UserSvcFacade interface {
	// CreateUser stores the profile of userID.
	CreateUser(ctx context.Context, userID string, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a profile.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUser changes profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}
