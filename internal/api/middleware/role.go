// internal/api/middleware/role.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const roleContextKey = "planning_role"

// Role attaches the process-wide planning role (read once from configuration
// at startup) to each request so handlers never reach into the environment.
func Role(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RoleFrom reads the planning role off the request context.
func RoleFrom(c *gin.Context) string {
	if role, ok := c.Get(roleContextKey); ok {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}

// RequireRole rejects requests unless the configured role matches.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFrom(c) != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "this action requires the " + required + " role",
			})
			return
		}
		c.Next()
	}
}
