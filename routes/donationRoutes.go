package routes

import (
	"mealbridge-be/controllers"
	"mealbridge-be/middlewares"

	"github.com/gin-gonic/gin"
)

// DonationRoutes sets up the donation and browse routes. reserveMiddleware is
// prepended to the reserve handler so rate limiting can be enabled only when
// Redis is configured.
func DonationRoutes(r *gin.Engine, reserveMiddleware ...gin.HandlerFunc) {
	donation := r.Group("/api/donation")
	{
		donation.GET("", controllers.ListDonations)
		donation.POST("/create", controllers.CreateDonation)
		donation.GET("/mine", middlewares.AuthMiddleware(), controllers.MyDonations)
		donation.GET("/:id", controllers.GetDonation)
		donation.GET("/:id/countdown", controllers.StreamCountdown)

		reserveChain := append([]gin.HandlerFunc{}, reserveMiddleware...)
		reserveChain = append(reserveChain, controllers.ReserveDonation)
		donation.POST("/:id/reserve", reserveChain...)
	}

	r.GET("/api/reservation", controllers.ListReservations)
	r.GET("/api/analytics", controllers.GetDonationAnalytics)
	r.GET("/api/location/detect", controllers.DetectLocation)
}
