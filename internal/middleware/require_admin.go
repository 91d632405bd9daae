package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin checks the authenticated caller carries the admin role
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access only"})
		c.Abort()
		return
	}
	c.Next()
}
