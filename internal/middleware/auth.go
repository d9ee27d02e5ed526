package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/models"
)

// ClaimsContextKey is where Authenticate stores the validated claims in
// the gin context.
const ClaimsContextKey = "claims"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the bearer token and stores the claims in the
// request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization header required",
			})
			return
		}

		token, err := m.authService.ExtractTokenFromHeader(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid authorization header",
			})
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			if err == auth.ErrExpiredToken {
				message = "token expired"
			}
			c.AbortWithStatusJSON(status, gin.H{
				"success": false,
				"message": message,
			})
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// RequireRoles allows only the listed roles through.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authentication required",
			})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient permissions",
		})
	}
}

// RequireAdmin is shorthand for RequireRoles(admin).
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(models.RoleAdmin)
}

// GetClaims extracts the authenticated user's claims from the context.
func GetClaims(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}

// CORS allows the configured frontend origin.
func CORS(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", frontendURL)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
