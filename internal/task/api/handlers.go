// Package api exposes the task HTTP endpoints.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/task/service"
)

// Handler handles task HTTP requests.
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// NewHandler creates a task handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// ListTasks handles GET /api/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	user := auth.CurrentUser(c)

	tasks, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.BadRequest("invalid request payload: " + err.Error())
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	task, err := h.service.Create(c.Request.Context(), user.ID, req.toParams())
	if err != nil {
		h.respondError(c, err, "failed to create task")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:taskId
func (h *Handler) UpdateTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	taskID := c.Param("taskId")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.BadRequest("invalid request payload: " + err.Error())
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	task, err := h.service.Update(c.Request.Context(), taskID, user.ID, req.toParams())
	if err != nil {
		h.respondError(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:taskId
func (h *Handler) DeleteTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	taskID := c.Param("taskId")

	if err := h.service.Delete(c.Request.Context(), taskID, user.ID); err != nil {
		h.respondError(c, err, "failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	appErr := apperrors.From(err, message)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr)
}
