package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/internal/services"
)

// GetBalances returns the caller's typed balances and coins.
func GetBalances(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	medals, err := services.MedalCount(database.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balances": user.Snapshot(),
		"medals":   medals,
	})
}

// ConvertPoints exchanges points between types, or into coins, at the
// caller's medal-adjusted rate.
func ConvertPoints(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		From   models.PointType `json:"from" binding:"required"`
		To     models.PointType `json:"to" binding:"required"`
		Amount int              `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.ConvertPoints(userID, input.From, input.To, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
