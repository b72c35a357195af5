// Package api exposes the GitHub stats HTTP endpoints.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/github/models"
	"github.com/devdash/devdash/internal/github/service"
)

// Handler handles GitHub stats HTTP requests.
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// NewHandler creates a GitHub stats handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// ListStats handles GET /api/github/stats with optional start_date/end_date
// query parameters (YYYY-MM-DD, inclusive).
func (h *Handler) ListStats(c *gin.Context) {
	user := auth.CurrentUser(c)

	var start, end *models.Date
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			appErr := apperrors.BadRequest("start_date must be YYYY-MM-DD")
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		start = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			appErr := apperrors.BadRequest("end_date must be YYYY-MM-DD")
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		end = &parsed
	}

	stats, err := h.service.List(c.Request.Context(), user.ID, start, end)
	if err != nil {
		h.respondError(c, err, "failed to list github stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Sync handles POST /api/github/sync
func (h *Handler) Sync(c *gin.Context) {
	user := auth.CurrentUser(c)

	if _, err := h.service.Sync(c.Request.Context(), user.ID, user.GitHubUsername); err != nil {
		h.respondError(c, err, "failed to sync github stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "GitHub data synced successfully"})
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	appErr := apperrors.From(err, message)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr)
}
