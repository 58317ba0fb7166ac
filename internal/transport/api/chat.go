package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

// statusClientClosedRequest follows the nginx convention for a request
// abandoned by its client.
const statusClientClosedRequest = 499

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

func ChatHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request"})
			return
		}

		turn, err := svc.Handle(c.Request.Context(), req.SessionID, req.Message)
		switch {
		case errors.Is(err, core.ErrValidation):
			c.JSON(http.StatusBadRequest, errorResponse{Error: "message_required"})
		case err != nil:
			c.Status(statusClientClosedRequest)
		default:
			c.JSON(http.StatusOK, turn)
		}
	}
}

// AssistantHandler exposes the remote assistant on its own, mapping its
// failures onto HTTP statuses.
func AssistantHandler(assistant Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "message_required"})
			return
		}

		reply, err := assistant.Ask(c.Request.Context(), req.Message)
		if err != nil {
			status, code := assistantStatus(err)
			log.FromCtx(c.Request.Context()).Warn().Err(err).Int("status", status).Msg("assistant request failed")
			c.JSON(status, errorResponse{Error: code})
			return
		}
		c.JSON(http.StatusOK, assistantResponse{Reply: reply})
	}
}

func assistantStatus(err error) (int, string) {
	var upErr *core.UpstreamError
	switch {
	case errors.Is(err, core.ErrNotConfigured):
		return http.StatusInternalServerError, "assistant_not_configured"
	case errors.Is(err, core.ErrUnavailable):
		return http.StatusServiceUnavailable, "assistant_unreachable"
	case errors.As(err, &upErr):
		return http.StatusBadGateway, "assistant_upstream_error"
	default:
		return http.StatusBadGateway, "assistant_failed"
	}
}

func SessionMessagesHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Conversations().Messages(c.Param("id")))
	}
}

func ResetSessionHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Reset(c.Param("id")))
	}
}
