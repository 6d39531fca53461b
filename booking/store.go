package booking

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
	"time"

	"github.com/meinhoongagan/salon-booking/models"
)

// AppointmentStore is the appointment table. Lookups that match no row return
// ErrNotFound; Create returns ErrSlotTaken when the storage layer rejects a
// second scheduled appointment for the same professional, date and time.
type AppointmentStore interface {
	BookedTimes(ctx context.Context, professionalID, date string) ([]string, error)
	ScheduledExists(ctx context.Context, professionalID, date, slot string) (bool, error)
	Create(ctx context.Context, a *models.Appointment) error
	Get(ctx context.Context, id string) (models.Appointment, error)
	// TransitionStatus updates the status only while it still equals from.
	TransitionStatus(ctx context.Context, id string, from, to models.AppointmentStatus) (bool, error)
	CompletePast(ctx context.Context, today string) (int64, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Appointment, error)
	ListUpcomingByPhone(ctx context.Context, phone, fromDate string, limit int) ([]models.Appointment, error)
}

// CatalogStore looks up services and professionals by id.
type CatalogStore interface {
	GetService(ctx context.Context, id string) (models.Service, error)
	GetProfessional(ctx context.Context, id string) (models.Professional, error)
}

// PendingStore holds selections between the slot step and the confirmation
// step. Load returns ErrPendingExpired for unknown or expired tokens.
type PendingStore interface {
	Save(ctx context.Context, p PendingBooking, ttl time.Duration) error
	Load(ctx context.Context, token string) (PendingBooking, error)
	Delete(ctx context.Context, token string) error
}

type Notifier interface {
	BookingCreated(ctx context.Context, a models.Appointment, s models.Service, p models.Professional) error
}
