package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "name": core.BotName, "version": core.BotVersion})
	}
}
