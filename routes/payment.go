package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/abhishekshak/watchstore-api/controllers/payment"
	"github.com/abhishekshak/watchstore-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/api/payment")
	{
		payment.POST("/initiate", paymentControllers.InitiatePaymentHandler())

		// Verification settles the order for the authenticated caller.
		payment.POST("/verify",
			middleware.ValidateToken,
			paymentControllers.VerifyPaymentHandler(db),
		)
	}
}
