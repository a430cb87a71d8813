package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-profile-api/internal/config"
	"user-profile-api/internal/repositories"
	"user-profile-api/internal/repositories/dynamo"
	"user-profile-api/internal/repositories/memory"
	"user-profile-api/internal/services"
)

// Container holds all application dependencies. It is built once at
// startup and read-only afterwards, so it is safe for concurrent reuse.
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	UserService services.UserService

	userRepo repositories.UserRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	repo, err := newUserRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Transient store failures are retried a bounded number of times
	// before surfacing
	retrying := repositories.NewRetryableUserRepository(repo, &repositories.RetryConfig{
		MaxAttempts:   cfg.Store.MaxRetryAttempts,
		InitialDelay:  cfg.Store.RetryInitialDelay,
		MaxDelay:      cfg.Store.RetryMaxDelay,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	})

	return &Container{
		Config:      cfg,
		Logger:      logger,
		UserService: services.NewUserService(retrying, logger),
		userRepo:    retrying,
	}, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Environment == "production" || config.IsServerlessMode() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func newUserRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories.UserRepository, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logger.Warn("Using in-memory store; records do not survive restarts")
		return memory.NewUserRepository(), nil

	case config.StoreBackendDynamo:
		client, err := dynamo.NewClient(ctx, cfg.Store.Region, cfg.Store.Endpoint)
		if err != nil {
			return nil, err
		}

		logger.WithFields(logrus.Fields{
			"table":  cfg.Store.TableName,
			"region": cfg.Store.Region,
		}).Info("Connected to DynamoDB")

		return dynamo.NewUserRepository(client, cfg.Store.TableName, logger), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Close cleans up held resources. The DynamoDB client holds no
// persistent connection, so there is nothing to tear down mid-process.
func (c *Container) Close() error {
	return nil
}
