package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/pkg/log"
)

// RequestLoggingMiddleware logs every request once the response is written.
func RequestLoggingMiddleware(ctx context.Context) gin.HandlerFunc {
	logger := log.FromCtx(ctx)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Warn()
		}
		event.
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("api_request")
	}
}
