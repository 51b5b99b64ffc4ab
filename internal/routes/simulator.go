package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
	"compcontrol/internal/middleware"
)

// SetupSimulatorRoutes sets up the compensation preview routes with rate limiting
func SetupSimulatorRoutes(r *gin.Engine) {
	// The simulator is the one public-facing surface, so it gets a per-IP
	// rate limit: 5 requests per second with a small burst
	simulator := r.Group("/simulator")
	simulator.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	}))
	{
		simulator.POST("/simulate", handlers.Simulate)
		simulator.POST("/roi", handlers.ProjectRoi)
	}
}
