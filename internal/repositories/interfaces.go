package repositories

import (
	"context"

	"user-profile-api/internal/models"
)

// UserRepository defines the key-value store operations for user profiles.
// Implementations key records by the immutable userId partition key.
type UserRepository interface {
	// Create persists a new profile. The caller performs its own
	// existence check; Create does not guard against overwrites.
	Create(ctx context.Context, user *models.UserProfile) error

	// GetByID retrieves a profile by its identity key
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)

	// UpdateFields applies a partial update to a stored profile.
	// Unsupplied fields retain their prior values.
	UpdateFields(ctx context.Context, id string, update *models.UserUpdate) error

	// Delete removes a profile by its identity key
	Delete(ctx context.Context, id string) error

	// List performs an unbounded full-table read. Ordering is not
	// guaranteed across repeated calls.
	List(ctx context.Context) ([]*models.UserProfile, error)

	// Exists checks whether a profile with the given ID exists
	Exists(ctx context.Context, id string) (bool, error)
}
