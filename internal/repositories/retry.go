package repositories

import (
	"context"
	"math"
	"math/rand"
	"time"

	"user-profile-api/internal/models"
)

// RetryConfig configures retry behavior for store operations
type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts"`
	InitialDelay  time.Duration `json:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled"`
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func(ctx context.Context) error

// WithRetry executes an operation with retry logic
func WithRetry(ctx context.Context, config *RetryConfig, op RetryableOperation) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt >= config.MaxAttempts || !IsRetryable(err) {
			break
		}

		delay := config.calculateDelay(attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// calculateDelay calculates the delay before the next retry attempt
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	// Jitter prevents synchronized retries across concurrent invocations
	if c.JitterEnabled {
		delay += rand.Float64() * 0.1 * delay
	}

	return time.Duration(delay)
}

// RetryableUserRepository wraps a UserRepository with retry logic for
// transient store failures. Definitive outcomes surface immediately.
type RetryableUserRepository struct {
	repo   UserRepository
	config *RetryConfig
}

// NewRetryableUserRepository creates a new RetryableUserRepository
func NewRetryableUserRepository(repo UserRepository, config *RetryConfig) *RetryableUserRepository {
	if config == nil {
		config = DefaultRetryConfig()
	}

	return &RetryableUserRepository{
		repo:   repo,
		config: config,
	}
}

// Create implements UserRepository.Create with retry logic
func (r *RetryableUserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.repo.Create(ctx, user)
	})
}

// GetByID implements UserRepository.GetByID with retry logic
func (r *RetryableUserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	var result *models.UserProfile
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		user, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		result = user
		return nil
	})
	return result, err
}

// UpdateFields implements UserRepository.UpdateFields with retry logic
func (r *RetryableUserRepository) UpdateFields(ctx context.Context, id string, update *models.UserUpdate) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.repo.UpdateFields(ctx, id, update)
	})
}

// Delete implements UserRepository.Delete with retry logic
func (r *RetryableUserRepository) Delete(ctx context.Context, id string) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.repo.Delete(ctx, id)
	})
}

// List implements UserRepository.List with retry logic
func (r *RetryableUserRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	var result []*models.UserProfile
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		users, err := r.repo.List(ctx)
		if err != nil {
			return err
		}
		result = users
		return nil
	})
	return result, err
}

// Exists implements UserRepository.Exists with retry logic
func (r *RetryableUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var result bool
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		exists, err := r.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		result = exists
		return nil
	})
	return result, err
}
