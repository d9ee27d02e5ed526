package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// UserHandler handles user administration requests.
type UserHandler struct {
	users       db.UserCollection
	authService *auth.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users db.UserCollection, authService *auth.Service) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

// List returns users with optional role and active filters.
func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}
	if active := c.Query("active"); active != "" {
		filter["is_active"] = active == "true"
	}

	users, total, err := h.users.FindUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"users":      users,
		"pagination": newPagination(page, limit, total),
	}, "users retrieved")
}

// Drivers returns active drivers, unpaginated, for assignment pickers.
func (h *UserHandler) Drivers(c *gin.Context) {
	drivers, _, err := h.users.FindUsers(c.Request.Context(), bson.M{
		"role":      models.RoleDriver,
		"is_active": true,
	}, 1, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"drivers": drivers}, "drivers retrieved")
}

// Get returns one user by id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user}, "user retrieved")
}

// UserUpdateRequest is the partial-update payload for a user.
type UserUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role          *string `json:"role,omitempty" binding:"omitempty,oneof=admin driver"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// Update modifies a user account.
func (h *UserHandler) Update(c *gin.Context) {
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		update["password_hash"] = hash
	}
	if req.Role != nil {
		update["role"] = *req.Role
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.LicenseNumber != nil {
		update["license_number"] = *req.LicenseNumber
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if len(update) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	if err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user}, "user updated")
}

// Delete removes a user account.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "user deleted")
}
