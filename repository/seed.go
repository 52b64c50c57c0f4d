package repository

import (
	"time"

	"mealbridge-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strptr(s string) *string { return &s }

// SeedDonations returns the demo listing the prototype shipped with, with
// expiry and creation times laid out relative to now.
func SeedDonations(now time.Time) []models.Donation {
	return []models.Donation{
		{
			ID:            primitive.NewObjectID(),
			DonorName:     "Green Valley Restaurant",
			IsAnonymous:   false,
			FoodType:      models.Veg,
			MealType:      models.Lunch,
			Quantity:      "25 meals",
			ExpiryTime:    now.Add(2 * time.Hour),
			Location:      "123 Main Street, Downtown",
			LocationLabel: strptr("Kitchen Back Door"),
			Packaging: models.PackagingStatus{
				ReadyToHandOver:      true,
				PackedHygienically:   true,
				DisposableContainers: true,
			},
			Images:    []string{"https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg"},
			Status:    models.Available,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            primitive.NewObjectID(),
			DonorName:     "Anonymous",
			IsAnonymous:   true,
			FoodType:      models.NonVeg,
			MealType:      models.Dinner,
			Quantity:      "10 meals",
			ExpiryTime:    now.Add(45 * time.Minute),
			Location:      "456 Oak Avenue, Midtown",
			LocationLabel: strptr("Front Reception"),
			Packaging: models.PackagingStatus{
				ReadyToHandOver:    true,
				PackedHygienically: true,
			},
			Images:    []string{"https://images.pexels.com/photos/2641886/pexels-photo-2641886.jpeg"},
			Status:    models.Available,
			CreatedAt: now.Add(-30 * time.Minute),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
		{
			ID:            primitive.NewObjectID(),
			DonorName:     "Community Kitchen",
			IsAnonymous:   false,
			FoodType:      models.Veg,
			MealType:      models.Breakfast,
			Quantity:      "15 meals",
			ExpiryTime:    now.Add(4 * time.Hour),
			Location:      "789 Pine Street, Uptown",
			LocationLabel: strptr("Side Entrance"),
			Packaging: models.PackagingStatus{
				ReadyToHandOver:      true,
				PackedHygienically:   true,
				DisposableContainers: true,
			},
			Images:     []string{"https://images.pexels.com/photos/1640772/pexels-photo-1640772.jpeg"},
			Status:     models.Reserved,
			ReservedBy: "Hope Foundation",
			CreatedAt:  now.Add(-time.Hour),
			UpdatedAt:  now.Add(-time.Hour),
		},
	}
}
