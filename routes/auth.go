package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/auth"
	"github.com/abhishekshak/watchstore-api/middleware"
	"github.com/abhishekshak/watchstore-api/models"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))

		authGroup.GET("/users",
			middleware.ValidateToken,
			middleware.RequireRole(string(models.RoleAdmin)),
			auth.ListUsersHandler(db),
		)
	}
}
