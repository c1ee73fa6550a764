package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/customer"
	"github.com/scentline/backend/internal/infrastructure/auth"
)

// SignUpRequest represents a new account registration
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
}

// SignInRequest represents a login attempt
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a profile change
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	Phone       string `json:"phone" binding:"omitempty,inmobile"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse carries the user and a token pair after sign-up/sign-in
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a user to its API representation
func ToUserResponse(u *customer.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Phone:       u.Phone,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}
