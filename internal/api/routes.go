package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the preview server routes
func SetupRoutes(handler *Handler) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(Logger())

	// Health check
	router.GET("/health", handler.HealthCheck)

	// Generated page
	router.GET("/", handler.GetIndex)
	router.GET("/index.md", handler.GetIndex)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/orgs/:org/runs", handler.GetRuns)

		runs := v1.Group("/runs/:id")
		{
			runs.GET("", handler.GetRun)
			runs.GET("/repos", handler.GetRunRepositories)
		}
	}

	return router
}
