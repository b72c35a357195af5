package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
)

// Handler handles dashboard HTTP requests.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Stats handles GET /api/dashboard-stats
func (h *Handler) Stats(c *gin.Context) {
	user := auth.CurrentUser(c)

	stats, err := h.service.Stats(c.Request.Context(), user.ID)
	if err != nil {
		appErr := apperrors.From(err, "failed to compute dashboard stats")
		h.logger.Error("Dashboard stats failed", zap.Error(err))
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes attaches the dashboard endpoint to an authenticated route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	group.GET("/dashboard-stats", handler.Stats)
}
