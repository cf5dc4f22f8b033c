package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
)

// respondError maps a service error onto the JSON error envelope.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Code, gin.H{
			"error": appErr.Message,
			"kind":  appErr.Kind,
		})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
