package routes

import (
	"mealbridge-be/controllers"

	"github.com/gin-gonic/gin"
)

// LeaderboardRoutes sets up the leaderboard routes
func LeaderboardRoutes(r *gin.Engine) {
	r.GET("/api/leaderboard", controllers.GetLeaderboard)
}
