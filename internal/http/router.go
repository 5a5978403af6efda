package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.scopelab.io/focus-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(focusUC *usecase.FocusUseCase) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(focusUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	// Focus optimization.
	focus := v1.Group("/focus")
	focus.GET("/optimum", handler.GetOptimalFocus)

	// Catalog listings.
	v1.GET("/media", handler.GetMedia)
	v1.GET("/objectives", handler.GetObjectives)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
