package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enum
type NotificationType string

const (
	NotifReservation NotificationType = "reservation"
	NotifDonation    NotificationType = "donation"
	NotifPickup      NotificationType = "pickup"
	NotifSystem      NotificationType = "system"
	NotifAchievement NotificationType = "achievement"
)

// NotificationPriority enum
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is an in-app message for a user.
type Notification struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Recipient      primitive.ObjectID   `bson:"recipient,omitempty" json:"recipient,omitempty"`
	Type           NotificationType     `bson:"type" json:"type"`
	Title          string               `bson:"title" json:"title"`
	Message        string               `bson:"message" json:"message"`
	Priority       NotificationPriority `bson:"priority" json:"priority"`
	ActionRequired bool                 `bson:"actionRequired" json:"actionRequired"`
	RelatedID      string               `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	IsRead         bool                 `bson:"isRead" json:"isRead"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}
