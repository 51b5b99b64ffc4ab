package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
)

// SetupCommissionRoutes sets up all routes related to the commission ledger
// and matching-bonus computation
func SetupCommissionRoutes(r *gin.Engine) {
	commission := r.Group("/commission")
	{
		commission.POST("/compute/:node_id", handlers.ComputeNodeBonus)
		commission.POST("/compute-all", handlers.ComputeAllBonuses)
		commission.GET("/ledger", handlers.ListCommissionEntries)
		commission.GET("/carry-forward/:node_id", handlers.GetCarryForward)
		commission.GET("/counters/:node_id", handlers.GetPeriodCounters)
	}
}
