package routes

import (
	"mealbridge-be/controllers"

	"github.com/gin-gonic/gin"
)

// NotificationRoutes sets up the notification routes
func NotificationRoutes(r *gin.Engine) {
	notification := r.Group("/api/notification")
	{
		notification.GET("", controllers.ListNotifications)
		notification.POST("/read-all", controllers.MarkAllNotificationsRead)
		notification.POST("/:id/read", controllers.MarkNotificationRead)
		notification.DELETE("/:id", controllers.DeleteNotification)
	}
}
