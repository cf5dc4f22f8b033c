package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterRewardRoutes(r *gin.RouterGroup) {
	rewards := r.Group("/rewards")
	rewards.Use(middleware.AuthMiddleware())
	{
		rewards.GET("", handlers.ListRewards)
		rewards.GET("/mine", handlers.ListMyRewards)
		rewards.POST("", handlers.CreateReward)
		rewards.DELETE("/:id", handlers.DeleteReward)
		rewards.POST("/:id/buy", middleware.MutationRateLimit(), handlers.BuyReward)
	}
}
