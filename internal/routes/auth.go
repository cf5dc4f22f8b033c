package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/handlers"
	"github.com/habitown/habitown-backend/internal/middleware"
)

func RegisterAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", middleware.AuthRateLimit(), handlers.ExchangeToken)
	}
}
