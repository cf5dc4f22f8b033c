package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/internal/services"
)

func rewardID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward id"})
		return 0, false
	}
	return uint(id), true
}

// ListRewards returns what the caller's group mates are offering.
func ListRewards(c *gin.Context) {
	userID := middleware.UserID(c)

	rewards, err := services.ListGroupRewards(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// ListMyRewards returns the caller's own listings.
func ListMyRewards(c *gin.Context) {
	userID := middleware.UserID(c)

	rewards, err := services.ListOwnRewards(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// CreateReward lists a new reward for sale.
func CreateReward(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Name      string           `json:"name" binding:"required,max=100"`
		Price     int              `json:"price" binding:"required"`
		PointType models.PointType `json:"pointType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward, err := services.CreateReward(userID, input.Name, input.Price, input.PointType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reward)
}

// DeleteReward takes the caller's listing off the shop.
func DeleteReward(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := rewardID(c)
	if !ok {
		return
	}

	if err := services.DeactivateReward(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// BuyReward purchases a group mate's reward. Rewards priced in "any"
// points take an explicit payment breakdown.
func BuyReward(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := rewardID(c)
	if !ok {
		return
	}

	var input struct {
		Breakdown models.PaymentBreakdown `json:"breakdown"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := services.BuyReward(userID, id, input.Breakdown)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
