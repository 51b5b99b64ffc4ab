package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
)

// SetupSponsorRoutes sets up all routes related to sponsor links
func SetupSponsorRoutes(r *gin.Engine) {
	sponsor := r.Group("/sponsor")
	{
		sponsor.GET("/links", handlers.ListSponsorLinks)
		sponsor.POST("/links", handlers.CreateSponsorLink)
		sponsor.DELETE("/links/:id", handlers.DeleteSponsorLink)
		sponsor.GET("/chain/:user_id", handlers.GetSponsorChain)
	}
}
