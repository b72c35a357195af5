package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the pomodoro endpoints to an authenticated route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	sessions := group.Group("/pomodoro/sessions")
	{
		sessions.GET("", handler.ListSessions)
		sessions.POST("", handler.CreateSession)
		sessions.PUT("/:sessionId", handler.UpdateSession)
	}
}
