package lambda

import (
	"context"
	"sync"

	"user-profile-api/internal/config"
	"user-profile-api/pkg/server"
)

// ConnectionManager holds the service container across warm Lambda
// invocations. The container opens its store connection once and is
// read-only after initialization, so concurrent reuse is safe. A failed
// initialization leaves the manager uninitialized so the next
// invocation can retry instead of serving a dead container.
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	config    *config.Config
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize builds the service container from the given configuration.
// It is a no-op when a container already exists.
func (cm *ConnectionManager) Initialize(ctx context.Context, cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.config = cfg
	if cm.container != nil {
		return nil
	}

	return cm.initLocked(ctx)
}

// GetContainer returns the service container, initializing it if
// necessary. It never returns a nil container without an error.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		return cm.container, nil
	}

	if cm.config == nil {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, err
		}
		cm.config = cfg
	}

	if err := cm.initLocked(ctx); err != nil {
		return nil, err
	}

	return cm.container, nil
}

// initLocked requires cm.mu to be held and cm.config to be set.
func (cm *ConnectionManager) initLocked(ctx context.Context) error {
	container, err := server.NewContainer(ctx, cm.config)
	if err != nil {
		return err
	}

	cm.container = container
	return nil
}

// Cleanup releases held resources
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	return nil
}
