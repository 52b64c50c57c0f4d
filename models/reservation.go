package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PickupType enum
type PickupType string

const (
	SelfPickup PickupType = "self"
	Delivery   PickupType = "delivery"
)

// ReservationRequest is the transient input claiming a donation.
type ReservationRequest struct {
	Message       string     `json:"message"`
	PickupType    PickupType `json:"pickupType" binding:"required,oneof=self delivery"`
	PreferredTime string     `json:"preferredTime"`
	ContactName   string     `json:"contactName" binding:"required,max=100"`
	ContactPhone  string     `json:"contactPhone" binding:"required,max=20"`
}

// Reservation is the persisted record of a claim on a donation.
type Reservation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Donation      primitive.ObjectID `bson:"donation" json:"donation"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`
	PickupType    PickupType         `bson:"pickupType" json:"pickupType"`
	PreferredTime string             `bson:"preferredTime,omitempty" json:"preferredTime,omitempty"`
	ContactName   string             `bson:"contactName" json:"contactName"`
	ContactPhone  string             `bson:"contactPhone" json:"contactPhone"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureReservationIndex creates an index on the donation field so lookups by
// donation stay cheap as the collection grows.
func EnsureReservationIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "donation", Value: 1}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
