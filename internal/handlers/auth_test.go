package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

func setupAuthRouter(users *MockUserCollection) (*gin.Engine, *auth.Service) {
	gin.SetMode(gin.TestMode)
	authService := auth.NewService("test-secret", time.Hour)
	handler := NewAuthHandler(authService, users)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	return r, authService
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := new(MockUserCollection)
	router, authService := setupAuthRouter(users)

	hash, _ := authService.HashPassword("password123")
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Driver One",
		Email:        "driver@fleet.local",
		PasswordHash: hash,
		Role:         models.RoleDriver,
		IsActive:     true,
	}

	users.On("FindUserByEmail", mock.Anything, "driver@fleet.local").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(nil)

	w := postJSON(router, "/api/auth/login", gin.H{
		"email":    "driver@fleet.local",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	users := new(MockUserCollection)
	router, authService := setupAuthRouter(users)

	hash, _ := authService.HashPassword("password123")
	users.On("FindUserByEmail", mock.Anything, "driver@fleet.local").Return(&models.User{
		ID:           primitive.NewObjectID(),
		Email:        "driver@fleet.local",
		PasswordHash: hash,
		IsActive:     true,
	}, nil)

	w := postJSON(router, "/api/auth/login", gin.H{
		"email":    "driver@fleet.local",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserCollection)
	router, _ := setupAuthRouter(users)

	users.On("FindUserByEmail", mock.Anything, "ghost@fleet.local").Return(nil, db.ErrNotFound)

	w := postJSON(router, "/api/auth/login", gin.H{
		"email":    "ghost@fleet.local",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	users := new(MockUserCollection)
	router, authService := setupAuthRouter(users)

	hash, _ := authService.HashPassword("password123")
	users.On("FindUserByEmail", mock.Anything, "off@fleet.local").Return(&models.User{
		ID:           primitive.NewObjectID(),
		Email:        "off@fleet.local",
		PasswordHash: hash,
		IsActive:     false,
	}, nil)

	w := postJSON(router, "/api/auth/login", gin.H{
		"email":    "off@fleet.local",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	users := new(MockUserCollection)
	router, _ := setupAuthRouter(users)

	users.On("FindUserByEmail", mock.Anything, "new@fleet.local").Return(nil, db.ErrNotFound)
	users.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Self-registration always produces an active driver
		return u.Role == models.RoleDriver && u.IsActive && u.PasswordHash != "password123"
	})).Return(primitive.NewObjectID(), nil)

	w := postJSON(router, "/api/auth/register", gin.H{
		"name":     "New Driver",
		"email":    "new@fleet.local",
		"password": "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	users.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserCollection)
	router, _ := setupAuthRouter(users)

	users.On("FindUserByEmail", mock.Anything, "taken@fleet.local").Return(&models.User{
		Email: "taken@fleet.local",
	}, nil)

	w := postJSON(router, "/api/auth/register", gin.H{
		"name":     "Copy Cat",
		"email":    "taken@fleet.local",
		"password": "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	users.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	users := new(MockUserCollection)
	router, _ := setupAuthRouter(users)

	// Password below the minimum length fails binding
	w := postJSON(router, "/api/auth/register", gin.H{
		"name":     "Short",
		"email":    "short@fleet.local",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
