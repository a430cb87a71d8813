package services

import (
	"context"

	"user-profile-api/internal/models"
)

// UserService defines the business operations for user profiles
type UserService interface {
	// CreateUser validates and persists a new profile, generating an
	// identifier when none is supplied. Fails if the ID already exists.
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.UserProfile, error)

	// GetUser retrieves a profile by ID
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)

	// ListUsers returns every stored profile
	ListUsers(ctx context.Context) ([]*models.UserProfile, error)

	// UpdateUser applies a partial update to an existing profile.
	// Unsupplied fields keep their prior values; the ID never changes.
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) error

	// DeleteUser removes an existing profile
	DeleteUser(ctx context.Context, id string) error
}

// CreateUserRequest carries the fields for creating a profile. The
// identifier is optional; a server-generated one is used when absent.
type CreateUserRequest struct {
	UserID    *string `json:"userId,omitempty" validate:"omitempty,min=1,max=100"`
	Email     string  `json:"email" validate:"required"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Age       *int    `json:"age,omitempty"`
}

// UpdateUserRequest carries a partial update. Every field is optional;
// a userId in the body is ignored in favor of the path identifier.
type UpdateUserRequest struct {
	UserID    *string `json:"userId,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Age       *int    `json:"age,omitempty"`
}
