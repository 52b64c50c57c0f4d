package controllers

import (
	"errors"
	"net/http"

	"mealbridge-be/config"
	"mealbridge-be/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recipientFromContext resolves the authenticated user, if any. Unauthenticated
// requests (prototype mode) see the shared feed.
func recipientFromContext(c *gin.Context) primitive.ObjectID {
	userID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID
	}
	recipient, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		return primitive.NilObjectID
	}
	return recipient
}

// ListNotifications returns notifications filtered by all, unread, or
// actionRequired
func ListNotifications(c *gin.Context) {
	filter := c.DefaultQuery("filter", repository.FilterAll)
	switch filter {
	case repository.FilterAll, repository.FilterUnread, repository.FilterActionRequired:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	notifications, err := notificationRepo.List(c.Request.Context(), recipientFromContext(c), filter)
	if err != nil {
		config.Log.Errorw("Failed to retrieve notifications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := notificationRepo.MarkRead(c.Request.Context(), notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			config.Log.Errorw("Failed to mark notification read", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every notification for the caller as read
func MarkAllNotificationsRead(c *gin.Context) {
	if err := notificationRepo.MarkAllRead(c.Request.Context(), recipientFromContext(c)); err != nil {
		config.Log.Errorw("Failed to mark notifications read", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification removes a notification
func DeleteNotification(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := notificationRepo.Delete(c.Request.Context(), notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			config.Log.Errorw("Failed to delete notification", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
