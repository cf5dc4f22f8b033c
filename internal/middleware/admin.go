package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/config"
)

// AdminMiddleware restricts a route group to the configured admin ids.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 || !config.AppConfig.IsAdmin(userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
