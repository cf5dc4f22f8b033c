package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterStatsRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/monthly", handlers.MonthlyStats)
		stats.GET("/leaderboard", handlers.Leaderboard)
	}
}
