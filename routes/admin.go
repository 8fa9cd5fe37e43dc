package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/abhishekshak/watchstore-api/controllers/order"
	watchController "github.com/abhishekshak/watchstore-api/controllers/watch"
	"github.com/abhishekshak/watchstore-api/middleware"
	"github.com/abhishekshak/watchstore-api/models"
)

// SetupAdminRoutes registers all "/admin/*" endpoints, gated on the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireRole(string(models.RoleAdmin)))
	{
		watchAdmin := adminGroup.Group("/watches")
		{
			watchAdmin.POST("", watchController.CreateWatch(db))
			watchAdmin.PUT("/:id", watchController.UpdateWatch(db))
			watchAdmin.DELETE("/:id", watchController.DeleteWatch(db))
			watchAdmin.GET("/export-excel", watchController.ExportWatchesToExcel(db))
		}

		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
	}
}
