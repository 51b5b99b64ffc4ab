package routes

import (
	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers"
)

// SetupPackageConfigRoutes sets up all routes related to package management
func SetupPackageConfigRoutes(r *gin.Engine) {
	pkg := r.Group("/package-config")
	{
		pkg.GET("", handlers.ListPackageConfigs)
		pkg.GET("/:id", handlers.GetPackageConfig)
		pkg.POST("", handlers.CreatePackageConfig)
		pkg.PUT("/:id", handlers.UpdatePackageConfig)
		pkg.DELETE("/:id", handlers.DeletePackageConfig)
	}
}
