package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/services"
)

// MonthlyStats returns the caller's figures for ?month= (YYYY-MM,
// defaults to the current month).
func MonthlyStats(c *gin.Context) {
	userID := middleware.UserID(c)

	stats, err := services.UserMonthlyStats(userID, c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Leaderboard returns the group's monthly ranking.
func Leaderboard(c *gin.Context) {
	userID := middleware.UserID(c)

	entries, err := services.GroupLeaderboard(userID, c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
