package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
)

// SetupEventRoutes sets up the websocket event stream
func SetupEventRoutes(r *gin.Engine) {
	r.GET("/events/ws", handlers.StreamEvents)
}
