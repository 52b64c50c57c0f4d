package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodType enum
type FoodType string

const (
	Veg    FoodType = "veg"
	NonVeg FoodType = "non-veg"
)

// MealType enum
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snacks    MealType = "snacks"
)

// DonationStatus enum. Lifecycle is one-way: available -> reserved -> collected.
type DonationStatus string

const (
	Available DonationStatus = "available"
	Reserved  DonationStatus = "reserved"
	Collected DonationStatus = "collected"
)

// PackagingStatus holds the three independent display flags set by the donor.
type PackagingStatus struct {
	ReadyToHandOver      bool `bson:"readyToHandOver" json:"readyToHandOver"`
	PackedHygienically   bool `bson:"packedHygienically" json:"packedHygienically"`
	DisposableContainers bool `bson:"disposableContainers" json:"disposableContainers"`
}

// Donation represents one unit of offered surplus food.
// ReservedBy is set exactly while status is reserved or collected.
type Donation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonorName     string             `bson:"donorName" json:"donorName"`
	IsAnonymous   bool               `bson:"isAnonymous" json:"isAnonymous"`
	FoodType      FoodType           `bson:"foodType" json:"foodType"`
	MealType      MealType           `bson:"mealType" json:"mealType"`
	Quantity      string             `bson:"quantity" json:"quantity"`
	Preparation   *string            `bson:"preparation,omitempty" json:"preparation,omitempty"`
	ExpiryTime    time.Time          `bson:"expiryTime" json:"expiryTime"`
	Location      string             `bson:"location" json:"location"`
	LocationLabel *string            `bson:"locationLabel,omitempty" json:"locationLabel,omitempty"`
	PickupFrom    *string            `bson:"pickupFrom,omitempty" json:"pickupFrom,omitempty"`
	PickupTo      *string            `bson:"pickupTo,omitempty" json:"pickupTo,omitempty"`
	Packaging     PackagingStatus    `bson:"packagingStatus" json:"packagingStatus"`
	Images        []string           `bson:"images" json:"images"`
	Status        DonationStatus     `bson:"status" json:"status"`
	ReservedBy    string             `bson:"reservedBy,omitempty" json:"reservedBy,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName returns the donor name to show, honoring anonymity.
func (d *Donation) DisplayName() string {
	if d.IsAnonymous {
		return "Anonymous Donor"
	}
	return d.DonorName
}
