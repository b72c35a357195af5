package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the task endpoints to an authenticated route group.
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	tasks := group.Group("/tasks")
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.PUT("/:taskId", handler.UpdateTask)
		tasks.DELETE("/:taskId", handler.DeleteTask)
	}
}
