package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID, ref string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{
		UserID:     userID,
		Amount:     150000,
		PaymentRef: ref,
		Status:     models.OrderStatusPaid,
		CreatedAt:  createdAt,
		Items: []models.OrderItem{
			{WatchID: 1, Name: "Seamaster", Quantity: 1, Price: 150000},
		},
	}).Error)
}

func performAs(handler gin.HandlerFunc, userID, role string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders", nil)
	c.Params = params
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	handler(c)
	return w
}

func TestGetUserOrders_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().Add(-time.Hour)
	seedOrder(t, db, "u1", "pidx-old", base)
	seedOrder(t, db, "u1", "pidx-new", base.Add(30*time.Minute))
	seedOrder(t, db, "u2", "pidx-other", base)

	w := performAs(GetUserOrdersHandler(db), "u1", "user", gin.Params{{Key: "userID", Value: "u1"}})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "pidx-new", orders[0].PaymentRef)
	assert.Equal(t, "pidx-old", orders[1].PaymentRef)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Seamaster", orders[0].Items[0].Name)
}

func TestGetUserOrders_OtherUserForbidden(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "u1", "pidx-1", time.Now())

	w := performAs(GetUserOrdersHandler(db), "u2", "user", gin.Params{{Key: "userID", Value: "u1"}})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUserOrders_AdminMayReadAnyUser(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "u1", "pidx-1", time.Now())

	w := performAs(GetUserOrdersHandler(db), "admin-1", "admin", gin.Params{{Key: "userID", Value: "u1"}})

	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestGetUserOrders_EmptyHistory(t *testing.T) {
	db := newTestDB(t)

	w := performAs(GetUserOrdersHandler(db), "u1", "user", gin.Params{{Key: "userID", Value: "u1"}})

	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Empty(t, orders)
}

func TestGetAllOrders_ListsEveryUser(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().Add(-time.Hour)
	seedOrder(t, db, "u1", "pidx-1", base)
	seedOrder(t, db, "u2", "pidx-2", base.Add(time.Minute))

	w := performAs(GetAllOrdersHandler(db), "admin-1", "admin", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "pidx-2", orders[0].PaymentRef)
}
