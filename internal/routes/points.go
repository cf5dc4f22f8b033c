package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterPointRoutes(r *gin.RouterGroup) {
	points := r.Group("/points")
	points.Use(middleware.AuthMiddleware())
	{
		points.GET("", handlers.GetBalances)
		points.POST("/convert", middleware.MutationRateLimit(), handlers.ConvertPoints)
	}
}
