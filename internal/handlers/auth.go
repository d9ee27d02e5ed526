package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *auth.Service
	users       db.UserCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, users db.UserCollection) *AuthHandler {
	return &AuthHandler{authService: authService, users: users}
}

// Register handles driver self-registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if _, err := h.users.FindUserByEmail(c.Request.Context(), req.Email); err == nil {
		respondError(c, db.ErrDuplicate)
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          models.RoleDriver,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		IsActive:      true,
	}

	id, err := h.users.InsertUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	user.ID = id

	token, err := h.authService.GenerateToken(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, gin.H{"user": user, "token": token}, "driver registered")
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, auth.ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		respondError(c, auth.ErrUserInactive)
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		respondError(c, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		respondError(c, err)
		return
	}

	// Best effort; a failed stamp must not fail the login.
	_ = h.users.UpdateLastLogin(c.Request.Context(), user.ID.Hex())

	respondOK(c, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         *user,
	}, "login successful")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondError(c, auth.ErrInvalidToken)
		return
	}

	user, err := h.users.FindUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user}, "profile retrieved")
}
