package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/internal/services"
)

func habitID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return 0, false
	}
	return uint(id), true
}

// ListHabits returns the group's habits with the caller's completion
// state for ?date= (today when omitted).
func ListHabits(c *gin.Context) {
	userID := middleware.UserID(c)

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}

	habits, err := services.ListHabits(userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits, "date": date})
}

// CreateHabit adds a habit to the caller's group.
func CreateHabit(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Name      string           `json:"name" binding:"required,max=100"`
		PointType models.PointType `json:"pointType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := services.CreateHabit(userID, input.Name, input.PointType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit renames a habit or changes its point type.
func UpdateHabit(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	var input struct {
		Name      string           `json:"name" binding:"max=100"`
		PointType models.PointType `json:"pointType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := services.UpdateHabit(userID, id, input.Name, input.PointType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// DeleteHabit removes a habit and claws back the points earned through it.
func DeleteHabit(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	if err := services.DeleteHabit(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleCompletion marks or unmarks the habit done for a date.
func ToggleCompletion(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := habitID(c)
	if !ok {
		return
	}

	var input struct {
		Date string `json:"date"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := services.ToggleCompletion(userID, id, input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
