package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"mealbridge-be/browse"
	"mealbridge-be/config"
	"mealbridge-be/countdown"
	"mealbridge-be/geo"
	"mealbridge-be/models"
	"mealbridge-be/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateDonation handles submission of the food details form
func CreateDonation(c *gin.Context) {
	var input struct {
		DonorName            string   `json:"donorName" binding:"required,max=100"`
		IsAnonymous          bool     `json:"isAnonymous"`
		IsVeg                *bool    `json:"isVeg" binding:"required"`
		MealType             string   `json:"mealType" binding:"required,oneof=breakfast lunch dinner snacks"`
		Preparation          *string  `json:"preparation,omitempty" binding:"omitempty,oneof=cooked uncooked raw"`
		Quantity             string   `json:"quantity" binding:"required,max=100"`
		ExpiryTime           string   `json:"expiryTime" binding:"required"`
		PickupFrom           *string  `json:"pickupFrom,omitempty"`
		PickupTo             *string  `json:"pickupTo,omitempty"`
		Location             string   `json:"location" binding:"required,max=200"`
		LocationLabel        *string  `json:"locationLabel,omitempty"`
		ReadyToHandOver      bool     `json:"readyToHandOver"`
		PackedHygienically   bool     `json:"packedHygienically"`
		DisposableContainers bool     `json:"disposableContainers"`
		Images               []string `json:"images"`
		Consent              bool     `json:"consent"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Consent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Consent is required to submit a donation"})
		return
	}

	expiry, err := time.Parse(time.RFC3339, input.ExpiryTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiryTime, expected RFC 3339"})
		return
	}

	foodType := models.NonVeg
	if *input.IsVeg {
		foodType = models.Veg
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	donation := models.Donation{
		ID:            primitive.NewObjectID(),
		DonorName:     input.DonorName,
		IsAnonymous:   input.IsAnonymous,
		FoodType:      foodType,
		MealType:      models.MealType(input.MealType),
		Preparation:   input.Preparation,
		Quantity:      input.Quantity,
		ExpiryTime:    expiry,
		PickupFrom:    input.PickupFrom,
		PickupTo:      input.PickupTo,
		Location:      input.Location,
		LocationLabel: input.LocationLabel,
		Packaging: models.PackagingStatus{
			ReadyToHandOver:      input.ReadyToHandOver,
			PackedHygienically:   input.PackedHygienically,
			DisposableContainers: input.DisposableContainers,
		},
		Images:    images,
		Status:    models.Available,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Donations posted while authenticated are attributed to the user.
	if userID, exists := c.Get("user_id"); exists {
		if createdBy, err := primitive.ObjectIDFromHex(userID.(string)); err == nil {
			donation.CreatedBy = createdBy
		}
	}

	if err := donationRepo.Create(c.Request.Context(), &donation); err != nil {
		config.Log.Errorw("Failed to create donation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// ListDonations handles the browse view: filtering, sorting, and pagination
// over the listing store, with a countdown snapshot attached per record.
func ListDonations(c *gin.Context) {
	distance, _ := strconv.Atoi(c.DefaultQuery("distance", "10"))
	filters := browse.Filters{
		FoodType:   c.DefaultQuery("foodType", "all"),
		Distance:   distance,
		Quantity:   c.Query("quantity"),
		UrgentOnly: c.Query("urgentOnly") == "true",
		SortBy:     browse.SortMode(c.DefaultQuery("sort", "latest")),
	}
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}

	records, err := donationRepo.List(c.Request.Context())
	if err != nil {
		config.Log.Errorw("Failed to retrieve donations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	now := time.Now()
	filtered := browse.Apply(records, filters, search, now)

	totalCount := len(filtered)
	totalPages := (totalCount + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}
	pageRecords := filtered[start:end]

	type DonationWithCountdown struct {
		models.Donation
		DonorDisplayName string `json:"donorDisplayName"`
		ExpiresIn        string `json:"expiresIn"`
		Urgent           bool   `json:"urgent"`
	}

	donations := make([]DonationWithCountdown, 0, len(pageRecords))
	for i := range pageRecords {
		snapshot := countdown.Evaluate(pageRecords[i].ExpiryTime, now)
		donations = append(donations, DonationWithCountdown{
			Donation:         pageRecords[i],
			DonorDisplayName: pageRecords[i].DisplayName(),
			ExpiresIn:        snapshot.Display,
			Urgent:           snapshot.Urgent,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"donations":      donations,
		"totalDonations": totalCount,
		"totalPages":     totalPages,
		"currentPage":    page,
	})
}

// GetDonation retrieves a donation by its ID with its countdown snapshot
func GetDonation(c *gin.Context) {
	donationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	donation, err := donationRepo.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			config.Log.Errorw("Failed to retrieve donation", "id", donationID.Hex(), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	snapshot := countdown.Evaluate(donation.ExpiryTime, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"donation":         donation,
		"donorDisplayName": donation.DisplayName(),
		"countdown":        snapshot,
	})
}

// StreamCountdown streams countdown snapshots for one donation as server-sent
// events, re-evaluated on the watcher interval until the client disconnects.
func StreamCountdown(c *gin.Context) {
	donationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	donation, err := donationRepo.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	ctx := c.Request.Context()
	snapshots := make(chan countdown.Snapshot, 1)

	go func() {
		defer close(snapshots)
		watcher.Watch(ctx, donation.ExpiryTime, func(s countdown.Snapshot) {
			select {
			case snapshots <- s:
			case <-ctx.Done():
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		s, ok := <-snapshots
		if !ok {
			return false
		}
		c.SSEvent("countdown", s)
		return true
	})
}

// ReserveDonation claims an available donation for the requester
func ReserveDonation(c *gin.Context) {
	donationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	var request models.ReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation, err := donationRepo.Reserve(c.Request.Context(), donationID, request)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		case errors.Is(err, repository.ErrAlreadyReserved):
			c.JSON(http.StatusConflict, gin.H{"error": "Donation is no longer available"})
		default:
			config.Log.Errorw("Failed to reserve donation", "id", donationID.Hex(), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve donation"})
		}
		return
	}

	notification := models.Notification{
		Recipient:      donation.CreatedBy,
		Type:           models.NotifReservation,
		Title:          "New Reservation Request",
		Message:        request.ContactName + " has reserved your " + donation.Quantity + " donation",
		Priority:       models.PriorityHigh,
		ActionRequired: true,
		RelatedID:      donation.ID.Hex(),
		CreatedAt:      time.Now(),
	}
	if err := notificationRepo.Push(c.Request.Context(), &notification); err != nil {
		config.Log.Errorw("Failed to push reservation notification", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reservation confirmed! You will receive pickup details shortly.",
		"donation": donation,
	})
}

// MyDonations retrieves all donations created by the authenticated user
func MyDonations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	creator, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	donations, err := donationRepo.ListByCreator(c.Request.Context(), creator)
	if err != nil {
		config.Log.Errorw("Failed to retrieve user donations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// ListReservations returns the reservation records for the dashboard
func ListReservations(c *gin.Context) {
	reservations, err := donationRepo.ListReservations(c.Request.Context())
	if err != nil {
		config.Log.Errorw("Failed to retrieve reservations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// DetectLocation asks the geolocation capability for the current position.
// Unavailability is not an error: the client is told to fall back to manual
// entry.
func DetectLocation(c *gin.Context) {
	coords, err := locator.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, geo.ErrUnavailable) {
			c.JSON(http.StatusOK, gin.H{
				"detected": false,
				"message":  "Unable to detect location. Please enter manually.",
			})
			return
		}
		config.Log.Errorw("Location detection failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Location detection failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detected":    true,
		"coordinates": coords,
	})
}
