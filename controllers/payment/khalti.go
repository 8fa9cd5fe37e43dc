package paymentControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	orderControllers "github.com/abhishekshak/watchstore-api/controllers/order"
	"github.com/abhishekshak/watchstore-api/models"
)

const defaultKhaltiAPI = "https://a.khalti.com/api/v2"

// statusCompleted is the only gateway status that settles an order.
const statusCompleted = "Completed"

// A bounded timeout keeps a stuck gateway from hanging the request.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// khaltiInitiateResponse represents the gateway's initiate reply.
type khaltiInitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
}

// khaltiLookupResponse represents the gateway's lookup reply.
type khaltiLookupResponse struct {
	Pidx        string `json:"pidx"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
}

func khaltiConfig() (secretKey, apiURL string, err error) {
	secretKey = os.Getenv("KHALTI_SECRET_KEY")
	apiURL = os.Getenv("KHALTI_API_URL")
	if apiURL == "" {
		apiURL = defaultKhaltiAPI
	}
	if secretKey == "" {
		return "", "", fmt.Errorf("khalti configuration missing")
	}
	return secretKey, apiURL, nil
}

func postKhalti(path string, payload any, out any) error {
	secretKey, apiURL, err := khaltiConfig()
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Key "+secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Khalti: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("khalti API error (%d): %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

// InitiateKhaltiPayment asks the gateway for a redirect URL. Amount is in
// paisa. It persists nothing; retries are the caller's business.
func InitiateKhaltiPayment(amount int64, orderID, orderName string) (paymentURL, pidx string, err error) {
	payload := map[string]interface{}{
		"return_url":          os.Getenv("PAYMENT_RETURN_URL"),
		"website_url":         os.Getenv("WEBSITE_URL"),
		"amount":              amount,
		"purchase_order_id":   orderID,
		"purchase_order_name": orderName,
	}

	var resp khaltiInitiateResponse
	if err := postKhalti("/epayment/initiate/", payload, &resp); err != nil {
		return "", "", err
	}
	if resp.PaymentURL == "" {
		return "", "", fmt.Errorf("khalti returned empty payment URL")
	}
	return resp.PaymentURL, resp.Pidx, nil
}

// LookupKhaltiPayment confirms the state of one payment attempt.
func LookupKhaltiPayment(pidx string) (status string, err error) {
	var resp khaltiLookupResponse
	if err := postKhalti("/epayment/lookup/", map[string]string{"pidx": pidx}, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

type InitiatePaymentInput struct {
	Amount    int64  `json:"amount" binding:"required"`
	OrderID   string `json:"orderId"`
	OrderName string `json:"orderName"`
}

type OrderItemInput struct {
	WatchID  uint   `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"required"` // paisa per unit
	Image    string `json:"image"`
}

type VerifyPaymentInput struct {
	Pidx   string           `json:"pidx" binding:"required"`
	Items  []OrderItemInput `json:"items" binding:"required,dive"`
	Amount int64            `json:"amount" binding:"required"`
}

// POST /api/payment/initiate
func InitiatePaymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input InitiatePaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number of paisa"})
			return
		}

		orderID := input.OrderID
		if orderID == "" {
			// Fresh id per attempt to avoid gateway-side collisions.
			orderID = fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		}
		orderName := input.OrderName
		if orderName == "" {
			orderName = "Cart Payment"
		}

		paymentURL, pidx, err := InitiateKhaltiPayment(input.Amount, orderID, orderName)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment initiation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"paymentUrl": paymentURL,
			"pidx":       pidx,
			"orderId":    orderID,
		})
	}
}

// snapshotTotal recomputes the order amount from the submitted items.
func snapshotTotal(items []OrderItemInput) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Price <= 0 {
			return 0, fmt.Errorf("item %q has a non-positive price", item.Name)
		}
		total += item.Price * int64(item.Quantity)
	}
	return total, nil
}

// POST /api/payment/verify
//
// Confirms a payment attempt with the gateway and, only when the gateway
// reports it completed, persists exactly one order for its pidx. Replays are
// expected: the redirect listener and the cart page both call verify, so the
// pidx acts as the uniqueness key and an already-settled attempt returns the
// existing order untouched.
func VerifyPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		total, err := snapshotTotal(input.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if total != input.Amount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount does not match item snapshot"})
			return
		}

		var existing models.Order
		err = db.Preload("Items").Where("payment_ref = ?", input.Pidx).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Payment already verified",
				"order":   existing,
			})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
			return
		}

		status, err := LookupKhaltiPayment(input.Pidx)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
			return
		}
		if status != statusCompleted {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Payment not completed: " + status,
			})
			return
		}

		order := models.Order{
			UserID:     userID,
			Amount:     total,
			PaymentRef: input.Pidx,
			Status:     models.OrderStatusPaid,
			CreatedAt:  time.Now(),
		}
		for _, item := range input.Items {
			order.Items = append(order.Items, models.OrderItem{
				WatchID:  item.WatchID,
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price,
				Image:    item.Image,
			})
		}

		if err := db.Create(&order).Error; err != nil {
			// A concurrent verify for the same pidx may have settled first.
			if db.Preload("Items").Where("payment_ref = ?", input.Pidx).First(&existing).Error == nil {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"message": "Payment already verified",
					"order":   existing,
				})
				return
			}
			// The user has paid but no order exists; operators must reconcile.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Payment captured but order could not be saved, contact support",
				"code":  "order_save_failed",
				"pidx":  input.Pidx,
			})
			return
		}

		orderControllers.BroadcastOrder(order)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Payment verified and order saved",
			"order":   order,
		})
	}
}
