package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterHabitRoutes(r *gin.RouterGroup) {
	habits := r.Group("/habits")
	habits.Use(middleware.AuthMiddleware())
	{
		habits.GET("", handlers.ListHabits)
		habits.POST("", handlers.CreateHabit)
		habits.PUT("/:id", handlers.UpdateHabit)
		habits.DELETE("/:id", handlers.DeleteHabit)
		habits.POST("/:id/toggle", middleware.MutationRateLimit(), handlers.ToggleCompletion)
	}
}
