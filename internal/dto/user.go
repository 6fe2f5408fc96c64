package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
)

// CreateUserRequest defines the profile stored for the authenticated subject.
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,max=255"`
}

// UpdateUserRequest defines the profile fields that may change.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
