package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
	"compcontrol/internal/middleware"
)

// SetupInvestmentRoutes sets up all routes related to investments
func SetupInvestmentRoutes(r *gin.Engine) {
	// Mutations are rate limited per IP; reads stay unthrottled
	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 20,
		Burst:             40,
	})

	investment := r.Group("/investment")
	{
		investment.POST("", limiter, handlers.CreateInvestment)
		investment.GET("", handlers.ListInvestments)
	}
}
