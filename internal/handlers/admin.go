package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/services"
)

// Recalculate rebuilds balances from source facts. With ?user= it
// repairs one user, otherwise the whole table. The response carries the
// before/after diff per user.
func Recalculate(c *gin.Context) {
	if raw := c.Query("user"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		diff, err := services.RecalculateUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"diffs": []services.BalanceDiff{*diff}})
		return
	}

	diffs, err := services.RecalculateAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diffs": diffs})
}
