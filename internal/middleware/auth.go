package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/pkg/response"
)

// ContextKeyUser is the key for the authenticated user in gin context
const ContextKeyUser = "user"

// Protect creates the bearer-token authentication middleware. Every request
// re-verifies independently; no session state is kept. The user is reloaded
// from the store so deleted accounts and tokens issued before a password
// change are both rejected.
func Protect(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "not authorized, no token")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "not authorized, token failed")
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "not authorized, token failed")
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "not authorized, token failed")
			c.Abort()
			return
		}

		// A stale token version means the password changed after issuance
		if claims.TokenVersion != user.TokenVersion {
			response.Unauthorized(c, "not authorized, token failed")
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose user is below admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			response.Forbidden(c, "access denied, admins only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin rejects requests whose user is not the superadmin
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleSuperAdmin {
			response.Forbidden(c, "access denied, superadmin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser gets the authenticated user from the gin context
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
