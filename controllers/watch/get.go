package watchController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

// GET /api/watches/:id
func GetWatchByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Watch ID is required"})
			return
		}

		var watch models.Watch
		if err := withDetails(db).First(&watch, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watch"})
			return
		}
		c.JSON(http.StatusOK, watch)
	}
}
