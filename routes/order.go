package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/abhishekshak/watchstore-api/controllers/order"
	"github.com/abhishekshak/watchstore-api/middleware"
	"github.com/abhishekshak/watchstore-api/models"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	{
		// Per-user order history (self or admin)
		orders.GET("/user/:userID",
			middleware.ValidateToken,
			orderControllers.GetUserOrdersHandler(db),
		)

		// Live feed of settled orders for the admin dashboard. The token
		// rides in the query string because browsers cannot set websocket
		// headers.
		orders.GET("/ws",
			middleware.TokenFromQuery,
			middleware.ValidateToken,
			middleware.RequireRole(string(models.RoleAdmin)),
			orderControllers.OrderWebSocketHandler,
		)
	}
}
