package watchController

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

func parseGender(raw string) (models.WatchGender, bool) {
	switch models.WatchGender(raw) {
	case models.GenderMen, models.GenderWomen, models.GenderUnisex:
		return models.WatchGender(raw), true
	case "":
		return models.GenderUnisex, true
	default:
		return "", false
	}
}

func parseFeatures(raw string) ([]models.WatchFeature, error) {
	if raw == "" {
		return nil, nil
	}
	var texts []string
	if err := json.Unmarshal([]byte(raw), &texts); err != nil {
		return nil, err
	}
	features := make([]models.WatchFeature, 0, len(texts))
	for i, text := range texts {
		features = append(features, models.WatchFeature{Position: i, Text: text})
	}
	return features, nil
}

// CreateWatch adds a catalog entry from a multipart form: scalar fields plus
// `features` (JSON array), `specifications` (JSON object) and up to 4 `images`
// files.
//
// POST /admin/watches
func CreateWatch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		brand := c.PostForm("brand")
		priceStr := c.PostForm("price")
		if name == "" || brand == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, brand, and price are required"})
			return
		}

		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var discountedPrice *int64
		if dpStr := c.PostForm("discounted_price"); dpStr != "" {
			dp, err := strconv.ParseInt(dpStr, 10, 64)
			if err != nil || dp <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discounted_price"})
				return
			}
			if dp > price {
				c.JSON(http.StatusBadRequest, gin.H{"error": "discountedPrice cannot exceed price"})
				return
			}
			discountedPrice = &dp
		}

		gender, ok := parseGender(c.PostForm("gender"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be Men, Women, or Unisex"})
			return
		}

		features, err := parseFeatures(c.PostForm("features"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid features format"})
			return
		}

		var specs models.Specifications
		if specsStr := c.PostForm("specifications"); specsStr != "" {
			if err := json.Unmarshal([]byte(specsStr), &specs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specifications format"})
				return
			}
		}

		var images []models.WatchImage
		if form, err := c.MultipartForm(); err == nil && form != nil {
			images, err = saveWatchImages(c, form.File["images"])
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		watch := models.Watch{
			Name:            name,
			Brand:           brand,
			Price:           price,
			DiscountedPrice: discountedPrice,
			Description:     c.PostForm("description"),
			Features:        features,
			Specifications:  specs,
			Images:          images,
			Gender:          gender,
			DisplayInHome:   c.PostForm("display_in_home") == "true",
		}

		if err := db.Create(&watch).Error; err != nil {
			removeImageFiles(images)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add watch"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Watch added successfully", "watch": watch})
	}
}
