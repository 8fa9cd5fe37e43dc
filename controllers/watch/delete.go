package watchController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

// DELETE /admin/watches/:id
func DeleteWatch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Watch ID is required"})
			return
		}

		var watch models.Watch
		if err := db.Preload("Images").First(&watch, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watch"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("watch_id = ?", watch.ID).Delete(&models.WatchFeature{}).Error; err != nil {
				return err
			}
			if err := tx.Where("watch_id = ?", watch.ID).Delete(&models.WatchImage{}).Error; err != nil {
				return err
			}
			return tx.Delete(&watch).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete watch"})
			return
		}

		removeImageFiles(watch.Images)

		c.JSON(http.StatusOK, gin.H{"message": "Watch deleted successfully"})
	}
}
