package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
)

// RequireRoles admits callers whose token role is one of roles. It must run
// after Auth; without claims the request is treated as unauthenticated.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := slices.Clone(roles)

	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortInvalidToken(c)
			return
		}
		if !slices.Contains(allowed, models.UserRole(claims.Role)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
