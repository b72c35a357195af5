// Package api exposes the insight HTTP endpoints.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/insights/service"
)

// Handler handles insight HTTP requests.
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// NewHandler creates an insight handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// ListInsights handles GET /api/insights
func (h *Handler) ListInsights(c *gin.Context) {
	user := auth.CurrentUser(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			appErr := apperrors.BadRequest("limit must be an integer")
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		limit = parsed
	}

	insights, err := h.service.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.respondError(c, err, "failed to list insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}

// Generate handles POST /api/insights/generate
func (h *Handler) Generate(c *gin.Context) {
	user := auth.CurrentUser(c)

	count, err := h.service.Generate(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "failed to generate insights")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Generated %d new insights", count),
		"count":   count,
	})
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	appErr := apperrors.From(err, message)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr)
}
