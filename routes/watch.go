package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	watchController "github.com/abhishekshak/watchstore-api/controllers/watch"
)

// SetupWatchRoutes registers the public catalog reads under "/api/watches".
func SetupWatchRoutes(r *gin.Engine, db *gorm.DB) {
	watches := r.Group("/api/watches")
	{
		watches.GET("", watchController.GetWatches(db))
		watches.GET("/:id", watchController.GetWatchByID(db))
	}
}
