package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"washpoint-system/config"
	"washpoint-system/internal/database/models"
)

func authRouter(db *gorm.DB) *gin.Engine {
	h := NewAuthHandler(db, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Role{RoleName: "cashier", AccessLevel: 1}).Error)
	r := authRouter(db)

	w := performRequest(r, http.MethodPost, "/auth/register", RegisterRequest{
		Username:  "dindo",
		Email:     "dindo@example.com",
		Password:  "sekret123",
		Firstname: "Dindo",
		Lastname:  "Reyes",
		RoleID:    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])

	// Password must never be stored in the clear.
	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "dindo").Error)
	assert.NotEqual(t, "sekret123", stored.Password)

	w = performRequest(r, http.MethodPost, "/auth/login", LoginRequest{
		Username: "dindo",
		Password: "sekret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp = decodeResponse(t, w)
	require.True(t, resp.Success)
	data, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Role{RoleName: "cashier", AccessLevel: 1}).Error)
	r := authRouter(db)

	w := performRequest(r, http.MethodPost, "/auth/register", RegisterRequest{
		Username:  "dindo",
		Email:     "dindo@example.com",
		Password:  "sekret123",
		Firstname: "Dindo",
		Lastname:  "Reyes",
		RoleID:    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/auth/login", LoginRequest{
		Username: "dindo",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)

	w := performRequest(r, http.MethodPost, "/auth/login", LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
