package watchController

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

// UpdateWatch applies a partial multipart update: fields not sent keep their
// old value, images are replaced only when new files are uploaded, and the
// discount invariant is re-checked against the effective price pair.
//
// PUT /admin/watches/:id
func UpdateWatch(db *gorm.DB) gin.HandlerFunc {
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

		if name := c.PostForm("name"); name != "" {
			watch.Name = name
		}
		if brand := c.PostForm("brand"); brand != "" {
			watch.Brand = brand
		}
		if desc := c.PostForm("description"); desc != "" {
			watch.Description = desc
		}

		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseInt(priceStr, 10, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			watch.Price = price
		}
		if dpStr := c.PostForm("discounted_price"); dpStr != "" {
			dp, err := strconv.ParseInt(dpStr, 10, 64)
			if err != nil || dp <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discounted_price"})
				return
			}
			watch.DiscountedPrice = &dp
		}
		if watch.DiscountedPrice != nil && *watch.DiscountedPrice > watch.Price {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discountedPrice cannot exceed price"})
			return
		}

		if genderStr := c.PostForm("gender"); genderStr != "" {
			gender, ok := parseGender(genderStr)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be Men, Women, or Unisex"})
				return
			}
			watch.Gender = gender
		}
		if dih := c.PostForm("display_in_home"); dih != "" {
			watch.DisplayInHome = dih == "true"
		}

		newFeatures := watch.Features
		if featuresStr := c.PostForm("features"); featuresStr != "" {
			parsed, err := parseFeatures(featuresStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid features format"})
				return
			}
			newFeatures = parsed
		}

		if specsStr := c.PostForm("specifications"); specsStr != "" {
			var specs models.Specifications
			if err := json.Unmarshal([]byte(specsStr), &specs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specifications format"})
				return
			}
			watch.Specifications = specs
		}

		oldImages := watch.Images
		newImages := oldImages
		imagesReplaced := false
		if form, err := c.MultipartForm(); err == nil && form != nil && len(form.File["images"]) > 0 {
			saved, err := saveWatchImages(c, form.File["images"])
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			newImages = saved
			imagesReplaced = true
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("watch_id = ?", watch.ID).Delete(&models.WatchFeature{}).Error; err != nil {
				return err
			}
			if imagesReplaced {
				if err := tx.Where("watch_id = ?", watch.ID).Delete(&models.WatchImage{}).Error; err != nil {
					return err
				}
			}

			watch.Features = nil
			watch.Images = nil
			if err := tx.Save(&watch).Error; err != nil {
				return err
			}

			for i := range newFeatures {
				newFeatures[i].ID = 0
				newFeatures[i].WatchID = watch.ID
				newFeatures[i].Position = i
			}
			if len(newFeatures) > 0 {
				if err := tx.Create(&newFeatures).Error; err != nil {
					return err
				}
			}
			if imagesReplaced {
				for i := range newImages {
					newImages[i].ID = 0
					newImages[i].WatchID = watch.ID
					newImages[i].Position = i
				}
				if len(newImages) > 0 {
					if err := tx.Create(&newImages).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update watch"})
			return
		}

		if imagesReplaced {
			removeImageFiles(oldImages)
		}

		watch.Features = newFeatures
		watch.Images = newImages
		c.JSON(http.StatusOK, gin.H{"message": "Watch updated successfully", "watch": watch})
	}
}
