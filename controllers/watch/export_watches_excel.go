package watchController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

// GET /admin/watches/export-excel
func ExportWatchesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var watches []models.Watch
		if err := withDetails(db).Find(&watches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watches"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Watches")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Brand", "Price", "DiscountedPrice", "Gender",
			"DisplayInHome", "Movement", "CaseMaterial", "WaterResistance",
			"Strap", "Features", "Images", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, w := range watches {
			row := sheet.AddRow()

			row.AddCell().SetValue(w.ID)
			row.AddCell().SetValue(w.Name)
			row.AddCell().SetValue(w.Brand)
			row.AddCell().SetValue(w.Price)
			if w.DiscountedPrice != nil {
				row.AddCell().SetValue(*w.DiscountedPrice)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(string(w.Gender))
			row.AddCell().SetValue(w.DisplayInHome)
			row.AddCell().SetValue(w.Specifications.Movement)
			row.AddCell().SetValue(w.Specifications.CaseMaterial)
			row.AddCell().SetValue(w.Specifications.WaterResistance)
			row.AddCell().SetValue(w.Specifications.Strap)

			var features []string
			for _, f := range w.Features {
				features = append(features, f.Text)
			}
			row.AddCell().SetValue(strings.Join(features, "; "))

			var images []string
			for _, img := range w.Images {
				images = append(images, img.Path)
			}
			row.AddCell().SetValue(strings.Join(images, "; "))

			row.AddCell().SetValue(w.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=watches.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
