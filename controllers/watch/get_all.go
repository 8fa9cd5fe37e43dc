package watchController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

// featuredSampleSize caps the landing-page promotion to a small fixed sample.
const featuredSampleSize = 4

// withDetails preloads the ordered child rows of a watch.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Features", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

// GetWatches lists the catalog.
//
// GET /api/watches
// GET /api/watches?displayInHome=true   -> featured sample: all flagged watches
// when 4 or fewer are flagged, otherwise a random 4 (re-querying may return a
// different subset).
func GetWatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("displayInHome") == "true" {
			var count int64
			if err := db.Model(&models.Watch{}).Where("display_in_home = ?", true).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watches"})
				return
			}

			query := withDetails(db).Where("display_in_home = ?", true)
			if count > featuredSampleSize {
				query = query.Order("RANDOM()").Limit(featuredSampleSize)
			}

			var watches []models.Watch
			if err := query.Find(&watches).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watches"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"watches": watches})
			return
		}

		query := withDetails(db)

		if gender := c.Query("gender"); gender != "" {
			if g, ok := parseGender(gender); ok {
				query = query.Where("gender = ?", g)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be Men, Women, or Unisex"})
				return
			}
		}
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("name LIKE ? OR brand LIKE ? OR description LIKE ?", like, like, like)
		}

		var watches []models.Watch
		if err := query.Order("created_at DESC").Find(&watches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watches"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"watches": watches})
	}
}
