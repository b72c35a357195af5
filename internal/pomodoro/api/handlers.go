// Package api exposes the pomodoro session HTTP endpoints.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/pomodoro/service"
)

// Handler handles pomodoro HTTP requests.
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// NewHandler creates a pomodoro handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// CreateSessionRequest is the payload for recording a session.
type CreateSessionRequest struct {
	Duration    int        `json:"duration" binding:"required"`
	SessionType string     `json:"session_type"`
	TaskID      *string    `json:"task_id"`
	StartedAt   *time.Time `json:"started_at"`
}

// UpdateSessionRequest carries the completion fields; nothing else about a
// session can change once recorded.
type UpdateSessionRequest struct {
	Completed   *bool      `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ListSessions handles GET /api/pomodoro/sessions
func (h *Handler) ListSessions(c *gin.Context) {
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

	sessions, err := h.service.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.respondError(c, err, "failed to list sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CreateSession handles POST /api/pomodoro/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.BadRequest("invalid request payload: " + err.Error())
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	session, err := h.service.Create(c.Request.Context(), user.ID, service.CreateParams{
		Duration:    req.Duration,
		SessionType: req.SessionType,
		TaskID:      req.TaskID,
		StartedAt:   req.StartedAt,
	})
	if err != nil {
		h.respondError(c, err, "failed to create session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateSession handles PUT /api/pomodoro/sessions/:sessionId
func (h *Handler) UpdateSession(c *gin.Context) {
	user := auth.CurrentUser(c)
	sessionID := c.Param("sessionId")

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.BadRequest("invalid request payload: " + err.Error())
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	session, err := h.service.Update(c.Request.Context(), sessionID, user.ID, service.UpdateParams{
		Completed:   req.Completed,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		h.respondError(c, err, "failed to update session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	appErr := apperrors.From(err, message)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr)
}
