package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blognest-backend/internal/session"
)

// Admin rejects identities outside the configured allow-list.
// Must run after Auth.
func Admin(holder *session.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := c.Get("identity")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin identity required",
			})
			c.Abort()
			return
		}

		id, ok := identity.(*session.Identity)
		if !ok || !holder.IsAdmin(id.UID) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin identity required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
