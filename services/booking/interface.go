package booking

import (
	"context"

	"expertbook/models"
)

// EventSlotBooked is the event name broadcast on every successful booking.
const EventSlotBooked = "slotBooked"

// SlotBookedPayload is the broadcast payload. Observers filter locally by the
// expert they are viewing and match slots on (date, time).
type SlotBookedPayload struct {
	ExpertID string `json:"expertId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Publisher broadcasts booking events to connected observers. Delivery is
// best effort and must never fail or block the booking flow.
type Publisher interface {
	Publish(event string, payload any)
}

// CreateInput carries the requester's booking details.
type CreateInput struct {
	ExpertID  string
	UserName  string
	UserEmail string
	UserPhone string
	Date      string
	Time      string
	Notes     string
}

// Service defines the booking operations.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.BookingWithExpert, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
}
