package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abhishekshak/watchstore-api/models"
)

// CartLine is one incoming line of a client-side cart.
type CartLine struct {
	WatchID  uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type MergeCartInput struct {
	Cart []CartLine `json:"cart" binding:"required,dive"`
}

type SetCartItemInput struct {
	WatchID  uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// MergeLines folds each incoming line into existing by watch id: quantities are
// summed for lines present on both sides, new ids are appended. Merging the
// same payload twice therefore doubles the shared lines, which is why the
// client discards its local cart after one successful merge.
func MergeLines(existing []models.CartItem, incoming []CartLine) []models.CartItem {
	merged := make([]models.CartItem, len(existing))
	copy(merged, existing)

	for _, line := range incoming {
		found := false
		for i := range merged {
			if merged[i].WatchID == line.WatchID {
				merged[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, models.CartItem{
				WatchID:  line.WatchID,
				Quantity: line.Quantity,
				AddedAt:  time.Now(),
			})
		}
	}
	return merged
}

// lockCartRow takes a row lock on engines that support it, so two concurrent
// merges for the same user serialize instead of overwriting each other.
// SQLite (used by the tests) rejects FOR UPDATE; its write transactions are
// exclusive anyway.
func lockCartRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// POST /user/cart/merge
//
// Merges an anonymous client-side cart into the caller's server cart as one
// atomic write. On failure nothing changes server-side and the client keeps
// its local copy for a retry.
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input MergeCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart format: " + err.Error()})
			return
		}

		var cart models.Cart
		err := db.Transaction(func(tx *gorm.DB) error {
			err := lockCartRow(tx).Where("user_id = ?", userID).First(&cart).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				cart = models.Cart{UserID: userID}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("cart_id = ?", cart.CartID).Order("id").Find(&cart.Items).Error; err != nil {
				return err
			}

			cart.Items = MergeLines(cart.Items, input.Cart)

			// Replace the whole item set so the cart persists as one document-style write.
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			for i := range cart.Items {
				cart.Items[i].ID = 0
				cart.Items[i].CartID = cart.CartID
			}
			if len(cart.Items) > 0 {
				if err := tx.Create(&cart.Items).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart merged successfully", "cart": cart})
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /user/cart
//
// Sets one line to the given quantity. Zero or negative quantity removes the
// line rather than storing an empty entry.
func SetCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input SetCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var watch models.Watch
		if err := db.First(&watch, "id = ?", input.WatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Watch does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate watch"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			err := lockCartRow(tx).Where("user_id = ?", userID).First(&cart).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				cart = models.Cart{UserID: userID}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
			}

			if input.Quantity <= 0 {
				return tx.Where("cart_id = ? AND watch_id = ?", cart.CartID, input.WatchID).
					Delete(&models.CartItem{}).Error
			}

			var item models.CartItem
			err = tx.Where("cart_id = ? AND watch_id = ?", cart.CartID, input.WatchID).First(&item).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				item = models.CartItem{
					CartID:   cart.CartID,
					WatchID:  input.WatchID,
					Quantity: input.Quantity,
					AddedAt:  time.Now(),
				}
				return tx.Create(&item).Error
			}

			item.Quantity = input.Quantity
			item.AddedAt = time.Now()
			return tx.Save(&item).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// DELETE /user/cart/:watch_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		watchID := c.Param("watch_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND watch_id = ?", cart.CartID, watchID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
