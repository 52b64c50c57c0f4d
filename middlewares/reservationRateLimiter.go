package middlewares

import (
	"net/http"
	"os"
	"time"

	"mealbridge-be/config"

	"github.com/gin-gonic/gin"
)

// ReservationRateLimiter caps how many reservations a caller may attempt per
// day. Authenticated callers are keyed by user id, anonymous ones by client IP.
func ReservationRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		if userIDVal, exists := c.Get("user_id"); exists {
			if userID, ok := userIDVal.(string); ok && userID != "" {
				caller = userID
			}
		}

		ctx := config.Ctx
		queuePrefix := os.Getenv("REDIS_QUEUE_FOR_RESERVATION_LIMIT")
		if queuePrefix == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Redis queue not configured"})
			c.Abort()
			return
		}

		// Create individual key for each caller
		callerKey := queuePrefix + ":" + caller

		// Increment caller's count with TTL
		count, err := config.RedisClient.Incr(ctx, callerKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			err = config.RedisClient.Expire(ctx, callerKey, 24*time.Hour).Err()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		// Check if caller exceeded limit
		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, callerKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
