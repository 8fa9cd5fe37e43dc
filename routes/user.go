package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/abhishekshak/watchstore-api/controllers/cart"
	"github.com/abhishekshak/watchstore-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/merge", cartControllers.MergeCart(db))             // POST /user/cart/merge
			cartGroup.POST("", cartControllers.SetCartItem(db))                 // POST /user/cart
			cartGroup.DELETE("/:watch_id", cartControllers.DeleteCartItem(db))  // DELETE /user/cart/:watch_id
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}
	}
}
