package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskpulse/internal/adapter/http/handlers"
	"taskpulse/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		tasks := api.Group("/tasks")
		tasks.Use(middleware.OwnerMiddleware())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/overdue", taskHandler.ListOverdue)
			tasks.GET("/upcoming", taskHandler.ListUpcoming)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", taskHandler.ToggleComplete)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.PUT("/:id/priority", taskHandler.SetPriority)
			tasks.POST("/:id/tags", taskHandler.AddTags)
			tasks.DELETE("/:id/tags", taskHandler.RemoveTags)
			tasks.PUT("/:id/due-date", taskHandler.SetDueDate)
			tasks.PUT("/:id/recurrence", taskHandler.SetRecurrence)
			tasks.PUT("/:id/reminder", taskHandler.SetReminder)
			tasks.POST("/:id/reminder/snooze", taskHandler.SnoozeReminder)
		}
	}
}
