package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/dealdesk/internal/entities"
)

// ContextKey is the type for context keys used by the auth middleware.
type ContextKey string

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "auth_user_id"
	// ContextKeyUserRole is the gin context key holding the authenticated user role.
	ContextKeyUserRole = "auth_user_role"
	// ContextKeyUsername is the gin context key holding the authenticated username.
	ContextKeyUsername = "auth_username"
)

// Middleware returns a gin middleware that authenticates requests by bearer
// token. Requests without a valid token are rejected with 401.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		user, err := service.ValidateToken(token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "invalid or expired token"
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUserRole, user.Role)
		c.Set(ContextKeyUsername, user.Username)
		c.Next()
	}
}

// RequireRole returns a middleware that only allows users with one of the
// given roles. Admins pass every role check. Must run after Middleware.
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		if role == entities.UserRoleAdmin {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient permissions",
		})
	}
}

// GetUserID retrieves the authenticated user ID from the gin context.
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetUserRole retrieves the authenticated user role from the gin context.
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	v, exists := c.Get(ContextKeyUserRole)
	if !exists {
		return "", false
	}
	role, ok := v.(entities.UserRole)
	return role, ok
}

// GetUsername retrieves the authenticated username from the gin context.
func GetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
