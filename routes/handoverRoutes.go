package routes

import (
	"mealbridge-be/controllers"

	"github.com/gin-gonic/gin"
)

// HandoverRoutes sets up the handover verification routes
func HandoverRoutes(r *gin.Engine) {
	handover := r.Group("/api/handover")
	{
		handover.POST("/start", controllers.StartHandover)
		handover.GET("/:id", controllers.GetHandover)
		handover.POST("/:id/send", controllers.SendHandoverCode)
		handover.POST("/:id/verify", controllers.VerifyHandoverCode)
		handover.POST("/:id/regenerate", controllers.RegenerateHandoverCode)
	}
}
