package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
	"compcontrol/internal/middleware"
)

// SetupBinaryTreeRoutes sets up all routes related to binary tree management
func SetupBinaryTreeRoutes(r *gin.Engine) {
	// Mutations are rate limited per IP; reads stay unthrottled
	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 20,
		Burst:             40,
	})

	tree := r.Group("/binary-tree")
	{
		tree.POST("/place", limiter, handlers.PlaceNode)
		tree.GET("/node/:id", handlers.GetBinaryNode)
		tree.GET("/node/by-user/:user_id", handlers.GetBinaryNodeByUser)
		tree.GET("/subtree/:id", handlers.GetSubtree)
		tree.GET("/consistency", handlers.CheckConsistency)
		tree.GET("/placements", handlers.ListPlacementRecords)
	}
}
