package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

type messageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// internalError logs err with request context and answers with a generic
// message so storage details never reach clients.
func internalError(c *gin.Context, err error, message string) {
	log.FromCtx(c.Request.Context()).Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg(message)
	c.JSON(http.StatusInternalServerError, messageResponse{Message: message})
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
