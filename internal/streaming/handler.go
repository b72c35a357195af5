package streaming

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	"github.com/devdash/devdash/internal/common/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard frontend may be served from a different origin.
		return true
	},
}

// Handler upgrades authenticated requests to WebSocket connections.
type Handler struct {
	hub    *Hub
	logger *logger.Logger
}

// NewHandler creates a streaming handler.
func NewHandler(hub *Hub, log *logger.Logger) *Handler {
	return &Handler{hub: hub, logger: log}
}

// Events handles GET /api/events
func (h *Handler) Events(c *gin.Context) {
	user := auth.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, user.ID, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// RegisterRoutes attaches the event stream endpoint to an authenticated
// route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	group.GET("/events", handler.Events)
}
