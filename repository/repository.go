// Package repository abstracts the donation listing store so the browse,
// countdown, and handover logic stay independent of where records live. Two
// implementations exist: MongoDB for a full deployment, and a seeded
// in-memory store for prototype mode and tests.
package repository

import (
	"context"
	"errors"
	"time"

	"mealbridge-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("repository: record not found")
	ErrAlreadyReserved = errors.New("repository: donation is no longer available")
	ErrNotReserved     = errors.New("repository: donation is not reserved")
)

// Notification list filters.
const (
	FilterAll            = "all"
	FilterUnread         = "unread"
	FilterActionRequired = "actionRequired"
)

// DonationRepository is the listing store contract: list, getById, reserve,
// plus the creation and collection transitions around them.
type DonationRepository interface {
	List(ctx context.Context) ([]models.Donation, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Donation, error)
	ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Donation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error)
	Create(ctx context.Context, d *models.Donation) error

	// Reserve transitions an available donation to reserved, binds the
	// requester's contact name, and persists the reservation record. Unknown
	// ids fail with ErrNotFound; anything not available fails with
	// ErrAlreadyReserved and changes nothing.
	Reserve(ctx context.Context, id primitive.ObjectID, req models.ReservationRequest) (models.Donation, error)

	// MarkCollected transitions a reserved donation to collected.
	MarkCollected(ctx context.Context, id primitive.ObjectID) (models.Donation, error)

	ListReservations(ctx context.Context) ([]models.Reservation, error)
}

// NotificationRepository stores per-user in-app notifications.
type NotificationRepository interface {
	Push(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, recipient primitive.ObjectID, filter string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
