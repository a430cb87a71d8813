package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-profile-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	UserService services.UserService
	Logger      *logrus.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	userHandler := NewUserHandler(config.UserService, config.Logger)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "user-profile-api",
			"timestamp": time.Now().UTC(),
		})
	})

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)

		// PUT/DELETE without an identifier are explicit 400s, not 404s
		users.PUT("", userHandler.respondMissingID)
		users.DELETE("", userHandler.respondMissingID)
	}

	// Unsupported verbs on known routes get 405 rather than gin's
	// default 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(userHandler.MethodNotAllowed)
}
