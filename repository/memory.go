package repository

import (
	"context"
	"sync"
	"time"

	"mealbridge-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is the in-memory store. It backs prototype mode (no MONGODB_URI) and
// tests. A single mutex guards both donations and reservations; there is only
// one mutation path (reserve/collect) so contention is not a concern.
type Memory struct {
	mu            sync.RWMutex
	donations     []models.Donation
	reservations  []models.Reservation
	notifications []models.Notification
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewSeededMemory creates an in-memory store loaded with the demo listing.
func NewSeededMemory(now time.Time) *Memory {
	return &Memory{donations: SeedDonations(now)}
}

func (m *Memory) List(ctx context.Context) ([]models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Donation, len(m.donations))
	copy(out, m.donations)
	return out, nil
}

func (m *Memory) ListSince(ctx context.Context, since time.Time) ([]models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Donation
	for _, d := range m.donations {
		if !d.CreatedAt.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Donation
	for _, d := range m.donations {
		if d.CreatedBy == creator {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.donations {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Donation{}, ErrNotFound
}

func (m *Memory) Create(ctx context.Context, d *models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	m.donations = append(m.donations, *d)
	return nil
}

func (m *Memory) Reserve(ctx context.Context, id primitive.ObjectID, req models.ReservationRequest) (models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.donations {
		if m.donations[i].ID != id {
			continue
		}
		if m.donations[i].Status != models.Available {
			return models.Donation{}, ErrAlreadyReserved
		}

		now := time.Now()
		m.donations[i].Status = models.Reserved
		m.donations[i].ReservedBy = req.ContactName
		m.donations[i].UpdatedAt = now

		m.reservations = append(m.reservations, models.Reservation{
			ID:            primitive.NewObjectID(),
			Donation:      id,
			Message:       req.Message,
			PickupType:    req.PickupType,
			PreferredTime: req.PreferredTime,
			ContactName:   req.ContactName,
			ContactPhone:  req.ContactPhone,
			CreatedAt:     now,
		})
		return m.donations[i], nil
	}
	return models.Donation{}, ErrNotFound
}

func (m *Memory) MarkCollected(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.donations {
		if m.donations[i].ID != id {
			continue
		}
		if m.donations[i].Status != models.Reserved {
			return models.Donation{}, ErrNotReserved
		}
		m.donations[i].Status = models.Collected
		m.donations[i].UpdatedAt = time.Now()
		return m.donations[i], nil
	}
	return models.Donation{}, ErrNotFound
}

func (m *Memory) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out, nil
}

// memoryNotifications is the store's NotificationRepository view. It is a
// separate type because List means donations on Memory itself.
type memoryNotifications struct{ m *Memory }

// Notifications exposes the store's NotificationRepository view.
func (m *Memory) Notifications() NotificationRepository {
	return memoryNotifications{m}
}

func (mn memoryNotifications) Push(ctx context.Context, n *models.Notification) error {
	m := mn.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (mn memoryNotifications) List(ctx context.Context, recipient primitive.ObjectID, filter string) ([]models.Notification, error) {
	m := mn.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Notification
	for _, n := range m.notifications {
		if !recipient.IsZero() && n.Recipient != recipient {
			continue
		}
		switch filter {
		case FilterUnread:
			if n.IsRead {
				continue
			}
		case FilterActionRequired:
			if !n.ActionRequired {
				continue
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func (mn memoryNotifications) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	m := mn.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func (mn memoryNotifications) MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error {
	m := mn.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notifications {
		if recipient.IsZero() || m.notifications[i].Recipient == recipient {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (mn memoryNotifications) Delete(ctx context.Context, id primitive.ObjectID) error {
	m := mn.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
