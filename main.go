package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"mealbridge-be/config"
	"mealbridge-be/controllers"
	"mealbridge-be/geo"
	"mealbridge-be/handover"
	"mealbridge-be/middlewares"
	"mealbridge-be/models"
	"mealbridge-be/repository"
	"mealbridge-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	config.InitLogger()
	if envErr != nil {
		config.Log.Info("No .env file found")
	}

	var donationRepo repository.DonationRepository
	var notificationRepo repository.NotificationRepository

	mongoEnabled := os.Getenv("MONGODB_URI") != ""
	if mongoEnabled {
		db := config.ConnectDB()
		if db == nil {
			config.Log.Fatal("Failed to connect to MongoDB")
		}

		if err := models.EnsureReservationIndex(config.GetCollection("reservations")); err != nil {
			config.Log.Warnw("Failed to ensure reservation index", "error", err)
		}

		donationRepo = repository.NewMongoDonations(
			config.GetCollection("donations"),
			config.GetCollection("reservations"),
		)
		notificationRepo = repository.NewMongoNotifications(config.GetCollection("notifications"))
	} else {
		// Prototype mode: the seeded in-memory store stands in for the
		// database, matching the mock listing the frontend shipped with.
		config.Log.Info("MONGODB_URI not set; using the seeded in-memory store")
		memory := repository.NewSeededMemory(time.Now())
		donationRepo = memory
		notificationRepo = memory.Notifications()
	}

	controllers.Setup(donationRepo, notificationRepo, handover.NewManager(), geo.EnvLocator{})

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("FRONTEND_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	r.Use(cors.New(corsConfig))

	var reserveMiddleware []gin.HandlerFunc
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
		reserveMiddleware = append(reserveMiddleware, middlewares.ReservationRateLimiter(20))
	}

	routes.DonationRoutes(r, reserveMiddleware...)
	routes.HandoverRoutes(r)
	routes.NotificationRoutes(r)
	routes.LeaderboardRoutes(r)
	if mongoEnabled {
		routes.AuthRoutes(r)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalf("Failed to start server: %v", err)
	}
}
