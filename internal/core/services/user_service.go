package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, userID string, req dto.CreateUserRequest) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	now := time.Now()
	user := domain.User{
		UserID:      userID,
		Email:       req.Email,
		Name:        req.Name,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User profile created", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return user, nil
	}

	user.Name = *req.Name
	user.Touch(userID, time.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
