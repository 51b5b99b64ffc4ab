package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
)

// SetupSystemConfigRoutes sets up all routes related to system logs
func SetupSystemConfigRoutes(r *gin.Engine) {
	logs := r.Group("/system-logs")
	{
		logs.GET("", handlers.ListSystemLogs)
		logs.GET("/:id", handlers.GetSystemLog)
		logs.POST("", handlers.CreateSystemLog)
		logs.DELETE("/:id", handlers.DeleteSystemLog)
		logs.GET("/by-node/:node_id", handlers.ListSystemLogsByNode)
	}
}
