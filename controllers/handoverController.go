package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mealbridge-be/config"
	"mealbridge-be/handover"
	"mealbridge-be/models"
	"mealbridge-be/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StartHandover opens a verification session for a reserved donation
func StartHandover(c *gin.Context) {
	var input struct {
		DonationID string `json:"donationId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donationID, err := primitive.ObjectIDFromHex(input.DonationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	donation, err := donationRepo.GetByID(c.Request.Context(), donationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			config.Log.Errorw("Failed to retrieve donation for handover", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	if donation.Status != models.Reserved {
		c.JSON(http.StatusConflict, gin.H{"error": "Handover requires a reserved donation"})
		return
	}

	session := handovers.Start(donation.ID.Hex(), func() {
		completeHandover(donation)
	})

	c.JSON(http.StatusCreated, gin.H{
		"sessionId":  session.ID(),
		"donationId": donation.ID.Hex(),
		"code":       session.Code(),
		"state":      session.State(),
		"expiresIn":  int(session.Remaining().Seconds()),
	})
}

// completeHandover runs once the two-second post-verification delay elapses:
// the donation becomes collected and the donor is notified.
func completeHandover(donation models.Donation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collected, err := donationRepo.MarkCollected(ctx, donation.ID)
	if err != nil {
		config.Log.Errorw("Failed to mark donation collected", "id", donation.ID.Hex(), "error", err)
		return
	}

	notification := models.Notification{
		Recipient: donation.CreatedBy,
		Type:      models.NotifPickup,
		Title:     "Handover Complete",
		Message:   "Your " + collected.Quantity + " donation has been collected. Thank you for helping reduce food waste!",
		Priority:  models.PriorityMedium,
		RelatedID: donation.ID.Hex(),
		CreatedAt: time.Now(),
	}
	if err := notificationRepo.Push(ctx, &notification); err != nil {
		config.Log.Errorw("Failed to push handover notification", "error", err)
	}
}

// GetHandover reports a session's state, countdown, and QR payload
func GetHandover(c *gin.Context) {
	session, err := handovers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handover session not found"})
		return
	}

	qrBytes, err := session.QR()
	if err != nil {
		config.Log.Errorw("Failed to build QR payload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build QR payload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":  session.ID(),
		"donationId": session.DonationID(),
		"state":      session.State(),
		"expiresIn":  int(session.Remaining().Seconds()),
		"qr":         json.RawMessage(qrBytes),
	})
}

// SendHandoverCode simulates delivering the code to the donor and starts the
// expiry countdown
func SendHandoverCode(c *gin.Context) {
	session, err := handovers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handover session not found"})
		return
	}

	if err := session.Send(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification code has been sent to the donor's phone.",
		"code":      session.Code(),
		"state":     session.State(),
		"expiresIn": int(session.Remaining().Seconds()),
	})
}

// VerifyHandoverCode checks a submitted code against the session
func VerifyHandoverCode(c *gin.Context) {
	session, err := handovers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handover session not found"})
		return
	}

	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Submit(input.Code); err != nil {
		switch {
		case errors.Is(err, handover.ErrCodeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP. Please try again."})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Handover successful! The food has been collected.",
		"state":   session.State(),
	})
}

// RegenerateHandoverCode discards the current code and re-arms the countdown
func RegenerateHandoverCode(c *gin.Context) {
	session, err := handovers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handover session not found"})
		return
	}

	if err := session.Regenerate(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      session.Code(),
		"state":     session.State(),
		"expiresIn": int(session.Remaining().Seconds()),
	})
}
