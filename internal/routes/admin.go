package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/recalculate", handlers.Recalculate)
	}
}
