package expertRepo

import (
	"context"
	"errors"

	"expertbook/models"
)

// ErrNotFound is returned when no expert (or no matching bookable slot) exists.
var ErrNotFound = errors.New("expert not found")

// ListQuery carries the filters and pagination for a catalogue listing.
// Page is 1-indexed; a page beyond the last yields an empty item list.
type ListQuery struct {
	Category string // exact match
	Search   string // case-insensitive substring match on name
	Page     int64
	Limit    int64
}

// Repository defines data-access methods for expert documents.
type Repository interface {
	Create(ctx context.Context, expert *models.Expert) error
	GetByID(ctx context.Context, id string) (*models.Expert, error)
	List(ctx context.Context, q ListQuery) ([]models.Expert, int64, error)

	// FindBookableSlot returns the owning expert only if the named slot
	// exists and is not yet booked.
	FindBookableSlot(ctx context.Context, expertID, date, timeLabel string) (*models.Expert, error)

	// MarkSlotBooked flips isBooked on the first slot matching (date, time).
	// Matching no document is not an error.
	MarkSlotBooked(ctx context.Context, expertID, date, timeLabel string) error
}
