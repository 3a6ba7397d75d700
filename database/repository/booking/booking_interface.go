package bookingRepo

import (
	"context"
	"errors"

	"expertbook/models"
)

var (
	// ErrDuplicateBooking is returned when the unique (expert_id, date, time)
	// index rejects an insert. This is the signal that another request won
	// the race for the slot.
	ErrDuplicateBooking = errors.New("booking already exists for this slot")

	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
)

// Repository defines data-access methods for the reservation ledger.
type Repository interface {
	// Insert appends a booking. The store-level unique index on
	// (expert_id, date, time) makes this the linearization point of the
	// booking flow; duplicates surface as ErrDuplicateBooking.
	Insert(ctx context.Context, booking *models.Booking) error

	// FindByEmail returns the requester's bookings joined with their expert
	// documents, most recent first.
	FindByEmail(ctx context.Context, email string) ([]models.BookingWithExpert, error)

	// UpdateStatus sets the booking's status and returns the updated record.
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
}
