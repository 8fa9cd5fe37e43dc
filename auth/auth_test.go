package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abhishekshak/watchstore-api/middleware"
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
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func performJSON(handler gin.HandlerFunc, method, target string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func registerPayload(email string) RegisterInput {
	return RegisterInput{
		Name:     "Asha",
		Email:    email,
		Phone:    "9800000000",
		Address:  "Kathmandu",
		Gender:   "Female",
		Password: "hunter22",
	}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	w := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("asha@example.com"))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)

	first := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("dup@example.com"))
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("dup@example.com"))
	assert.Equal(t, http.StatusBadRequest, second.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	db := newTestDB(t)

	payload := registerPayload("short@example.com")
	payload.Password = "abc"
	w := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_ReturnsTokenWithClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	reg := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("login@example.com"))
	require.Equal(t, http.StatusCreated, reg.Code)

	w := performJSON(LoginHandler(db), http.MethodPost, "/auth/login", LoginInput{
		Email:    "login@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "login@example.com", resp.User.Email)

	claims := middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.Equal(t, string(models.RoleUser), claims.Role)
	require.NotNil(t, claims.ExpiresAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	reg := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("wp@example.com"))
	require.Equal(t, http.StatusCreated, reg.Code)

	w := performJSON(LoginHandler(db), http.MethodPost, "/auth/login", LoginInput{
		Email:    "wp@example.com",
		Password: "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := newTestDB(t)

	w := performJSON(LoginHandler(db), http.MethodPost, "/auth/login", LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsers_OmitsPasswords(t *testing.T) {
	db := newTestDB(t)

	reg := performJSON(RegisterHandler(db), http.MethodPost, "/auth/register", registerPayload("list@example.com"))
	require.Equal(t, http.StatusCreated, reg.Code)

	w := performJSON(ListUsersHandler(db), http.MethodGet, "/auth/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "password")
	var resp struct {
		Users []models.PublicUser `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "list@example.com", resp.Users[0].Email)
}
