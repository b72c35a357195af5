package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the GitHub stats endpoints to an authenticated route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	gh := group.Group("/github")
	{
		gh.GET("/stats", handler.ListStats)
		gh.POST("/sync", handler.Sync)
	}
}
