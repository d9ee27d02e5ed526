package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/models"
)

func testService() *Service {
	return NewService("test-secret", 24*time.Hour)
}

func TestNewService(t *testing.T) {
	service := testService()
	assert.NotNil(t, service)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	// A non-positive expiry falls back to the default
	service = NewService("test-secret", 0)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestService_HashPassword(t *testing.T) {
	service := testService()

	password := "testpassword123"
	hash, err := service.HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_CheckPassword(t *testing.T) {
	service := testService()

	password := "testpassword123"
	hash, _ := service.HashPassword(password)

	// Test correct password
	assert.True(t, service.CheckPassword(password, hash))

	// Test incorrect password
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_GenerateToken(t *testing.T) {
	service := testService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "driver@fleet.local",
		Role:  models.RoleDriver,
	}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestService_ValidateToken(t *testing.T) {
	service := testService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@fleet.local",
		Role:  models.RoleAdmin,
	}

	token, _ := service.GenerateToken(user)

	// Test valid token
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	// Test token signed with a different secret
	other := NewService("other-secret", time.Hour)
	foreign, _ := other.GenerateToken(user)
	_, err = service.ValidateToken(foreign)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ExpiredToken(t *testing.T) {
	service := NewService("test-secret", -time.Hour)
	service.tokenExp = -time.Hour

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@fleet.local",
		Role:  models.RoleAdmin,
	}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := testService()

	token, err := service.ExtractTokenFromHeader("Bearer abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = service.ExtractTokenFromHeader("")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("abc123")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("Basic abc123")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("Bearer ")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_GenerateRefreshToken(t *testing.T) {
	service := testService()

	first, err := service.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, _ := service.GenerateRefreshToken()
	assert.NotEqual(t, first, second)
}
