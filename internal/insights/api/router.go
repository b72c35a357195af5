package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the insight endpoints to an authenticated route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	insights := group.Group("/insights")
	{
		insights.GET("", handler.ListInsights)
		insights.POST("/generate", handler.Generate)
	}
}
