package memory

import (
	"context"
	"sync"

	"user-profile-api/internal/models"
	"user-profile-api/internal/repositories"
)

// UserRepository is an in-memory implementation of
// repositories.UserRepository, used in local mode and in tests.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.UserProfile
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*models.UserProfile),
	}
}

func clone(user *models.UserProfile) *models.UserProfile {
	c := *user
	if user.Age != nil {
		age := *user.Age
		c.Age = &age
	}
	if user.ExpiresAt != nil {
		exp := *user.ExpiresAt
		c.ExpiresAt = &exp
	}
	return &c
}

// Create persists a new profile
func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.UserID] = clone(user)
	return nil
}

// GetByID retrieves a profile by its identity key
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.NotFoundError("user", id)
	}
	return clone(user), nil
}

// UpdateFields applies a partial update to a stored profile
func (r *UserRepository) UpdateFields(ctx context.Context, id string, update *models.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repositories.NotFoundError("user", id)
	}

	user.Apply(update)
	return nil
}

// Delete removes a profile by its identity key
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repositories.NotFoundError("user", id)
	}

	delete(r.users, id)
	return nil
}

// List returns all stored profiles in unspecified order
func (r *UserRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.UserProfile, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, clone(user))
	}
	return users, nil
}

// Exists checks whether a profile with the given ID exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}
