package booking

import "errors"

var (
	// ErrSlotUnavailable means the availability probe found no bookable
	// (expert, date, time): the expert or slot does not exist, or the slot
	// is already booked. The caller should pick another slot.
	ErrSlotUnavailable = errors.New("slot already booked or does not exist")

	// ErrSlotTaken means the probe passed but the ledger insert lost the
	// race to a concurrent request. Functionally the same outcome for the
	// requester, reported distinctly for diagnostics.
	ErrSlotTaken = errors.New("slot was just taken by another user")

	// ErrNotFound is returned by lookups and status updates when no booking
	// matches the given id.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidStatus is returned when a status update names an unknown status.
	ErrInvalidStatus = errors.New("invalid booking status")
)
