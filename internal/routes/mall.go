package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterMallRoutes(r *gin.RouterGroup) {
	mall := r.Group("/mall")
	mall.Use(middleware.AuthMiddleware())
	{
		mall.GET("", handlers.ListMallItems)
		mall.GET("/history", handlers.MallHistory)
		mall.POST("/:id/buy", middleware.MutationRateLimit(), handlers.BuyMallItem)

		admin := mall.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", handlers.CreateMallItem)
			admin.PUT("/:id", handlers.UpdateMallItem)
			admin.DELETE("/:id", handlers.RetireMallItem)
		}
	}
}
