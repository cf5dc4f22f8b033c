package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/services"
)

// ExchangeToken lets the chat gateway trade its shared secret plus a
// platform identity for a user JWT. Unknown users and groups are
// registered on first contact.
func ExchangeToken(c *gin.Context) {
	var input struct {
		Secret   string                   `json:"secret" binding:"required"`
		Identity services.GatewayIdentity `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Per-user throttle on top of the IP limiter.
	allowed, err := database.CheckRateLimit(input.Identity.UserID, 10, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many token requests"})
		return
	}

	result, err := services.Authenticate(input.Secret, input.Identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
