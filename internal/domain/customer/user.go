package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
)

// Role is the access level of a user account
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User is a registered account
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"uniqueIndex;not null"`
	DisplayName  string `gorm:"not null"`
	Phone        string
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"not null;default:customer"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a customer account. The password hash must already
// be computed by the caller.
func NewUser(email, displayName, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		DisplayName:       displayName,
		PasswordHash:      passwordHash,
		Role:              RoleCustomer,
		Active:            true,
	}, nil
}

// UpdateProfile changes the display name and phone
func (u *User) UpdateProfile(displayName, phone string) error {
	if displayName == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	u.DisplayName = displayName
	u.Phone = phone
	u.Touch()
	return nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines persistence for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
