package security

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	roleKey     = "role"
	usernameKey = "username"
)

// JWTMiddleware validates the bearer token and stores its claims on the
// context.
func JWTMiddleware(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		claims, err := manager.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := strconv.Atoi(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Set(roleKey, claims.Role)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// Authorize ensures the user holds at least the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentRole(c).HasPermission(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		c.Next()
	}
}

func UserID(c *gin.Context) (int, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}

func CurrentRole(c *gin.Context) roles.Role {
	return roles.Role(c.GetString(roleKey))
}

// SetIdentity is what JWTMiddleware does after parsing; handler tests call it
// directly.
func SetIdentity(c *gin.Context, userID int, role roles.Role) {
	c.Set(userIDKey, userID)
	c.Set(roleKey, role.String())
}
