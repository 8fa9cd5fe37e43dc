package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (register/login) + admin user listing
	SetupAuthRoutes(r, db)

	// Public catalog reads
	SetupWatchRoutes(r, db)

	// JWT-protected cart routes
	SetupUserRoutes(r, db)

	// Admin-only catalog and order management
	SetupAdminRoutes(r, db)

	// Order history + admin live feed
	SetupOrderRoutes(r, db)

	// Khalti payment routes
	SetupPaymentRoutes(r, db)
}
