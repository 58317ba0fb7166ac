package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
)

const defaultLogLimit = 50

type feedbackRequest struct {
	Feedback core.Feedback `json:"feedback"`
}

func RecentLogsHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultLogLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_limit"})
				return
			}
			limit = n
		}
		c.JSON(http.StatusOK, logger.Recent(limit))
	}
}

func SessionLogsHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.BySession(c.Param("id")))
	}
}

func LogStatsHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.Stats())
	}
}

func ExportLogsHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := logger.Export()
		if err != nil {
			internalError(c, err, "Gagal mengekspor log.")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="ai-logs.json"`)
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

func ClearLogsHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Clear()
		c.Status(http.StatusNoContent)
	}
}

func FeedbackHandler(logger *analytics.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil || !req.Feedback.Valid() {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "feedback_must_be_positive_or_negative"})
			return
		}

		if !logger.AttachFeedback(c.Param("id"), req.Feedback) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "log_not_found"})
			return
		}
		entry, _ := logger.Get(c.Param("id"))
		c.JSON(http.StatusOK, entry)
	}
}
