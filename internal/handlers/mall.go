package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/services"
)

func mallItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return uint(id), true
}

// ListMallItems returns the communal Town Mall catalog.
func ListMallItems(c *gin.Context) {
	items, err := services.ListMallItems()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// BuyMallItem spends the caller's coins on a catalog item.
func BuyMallItem(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := mallItemID(c)
	if !ok {
		return
	}

	result, err := services.BuyMallItem(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MallHistory returns the caller's coin purchases, newest first.
func MallHistory(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := services.MallHistory(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// CreateMallItem adds a catalog entry (admin only).
func CreateMallItem(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required,max=100"`
		Price     int    `json:"price" binding:"required"`
		Stock     *int   `json:"stock"`
		SponsorID *int64 `json:"sponsorId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock := -1
	if input.Stock != nil {
		stock = *input.Stock
	}

	item, err := services.CreateMallItem(input.Name, input.Price, stock, input.SponsorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMallItem edits price or stock of a catalog entry (admin only).
func UpdateMallItem(c *gin.Context) {
	id, ok := mallItemID(c)
	if !ok {
		return
	}

	var input struct {
		Price *int `json:"price"`
		Stock *int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := services.UpdateMallItem(id, input.Price, input.Stock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RetireMallItem hides a catalog entry (admin only).
func RetireMallItem(c *gin.Context) {
	id, ok := mallItemID(c)
	if !ok {
		return
	}

	if err := services.RetireMallItem(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
