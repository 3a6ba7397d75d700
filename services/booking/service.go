package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "expertbook/database/repository/booking"
	expertRepo "expertbook/database/repository/expert"
	"expertbook/models"
)

// DefaultBookingService implements Service on top of the expert store, the
// reservation ledger, and an injected event publisher.
type DefaultBookingService struct {
	ExpertRepo  expertRepo.Repository
	BookingRepo bookingRepo.Repository
	Publisher   Publisher
	Logger      *zap.Logger
}

// Create runs the slot-booking protocol: availability probe, ledger insert,
// slot mutation, broadcast. The probe is only an early-reject optimization;
// the ledger's unique index is what actually serializes concurrent requests
// for the same (expert, date, time).
func (s *DefaultBookingService) Create(ctx context.Context, in CreateInput) (*models.Booking, error) {
	// Step 1: probe availability. A miss does not distinguish a missing
	// expert, a missing slot, and an already booked slot.
	if _, err := s.ExpertRepo.FindBookableSlot(ctx, in.ExpertID, in.Date, in.Time); err != nil {
		if errors.Is(err, expertRepo.ErrNotFound) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("availability probe failed: %w", err)
	}

	// Step 2: insert into the ledger. There is a window between the probe
	// and this insert where another request can take the slot; the unique
	// index closes it.
	booking := &models.Booking{
		ID:        uuid.New().String(),
		ExpertID:  in.ExpertID,
		UserName:  in.UserName,
		UserEmail: in.UserEmail,
		UserPhone: in.UserPhone,
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
		Status:    models.StatusConfirmed,
		CreatedAt: time.Now(),
	}
	if err := s.BookingRepo.Insert(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("ledger insert failed: %w", err)
	}

	// Step 3: flip the slot's availability projection. The booking is
	// already durable, so a failure here leaves the projection stale but
	// must not fail the request. There is deliberately no compensation
	// logic; the ledger stays authoritative.
	if err := s.ExpertRepo.MarkSlotBooked(ctx, in.ExpertID, in.Date, in.Time); err != nil {
		s.Logger.Warn("booking: slot mark failed after successful insert",
			zap.String("bookingId", booking.ID),
			zap.String("expertId", in.ExpertID),
			zap.String("date", in.Date),
			zap.String("time", in.Time),
			zap.Error(err),
		)
	}

	// Step 4: broadcast. Fire and forget.
	s.Publisher.Publish(EventSlotBooked, SlotBookedPayload{
		ExpertID: in.ExpertID,
		Date:     in.Date,
		Time:     in.Time,
	})

	return booking, nil
}

// ListByEmail returns the requester's bookings, newest first, with expert
// details joined in.
func (s *DefaultBookingService) ListByEmail(ctx context.Context, email string) ([]models.BookingWithExpert, error) {
	return s.BookingRepo.FindByEmail(ctx, email)
}

// UpdateStatus sets a booking's status after validating it against the enum.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	booking, err := s.BookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}
