package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
	"compcontrol/internal/middleware"
)

// SetupBinarySettingsRoutes sets up all routes related to binary settings
func SetupBinarySettingsRoutes(r *gin.Engine) {
	// Mutations are rate limited per IP; reads stay unthrottled
	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 20,
		Burst:             40,
	})

	settings := r.Group("/binary-settings")
	{
		settings.GET("", handlers.GetBinarySettings)
		settings.PUT("", limiter, handlers.UpdateBinarySettings)
	}
}
