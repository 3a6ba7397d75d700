package models

import "time"

// Booking status values.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a confirmed reservation record. The bookings collection
// carries a unique index on (expert_id, date, time); that index, not the
// availability check, is what prevents double booking.
type Booking struct {
	ID        string    `bson:"id" json:"id"`                         // Unique booking identifier (UUID)
	ExpertID  string    `bson:"expert_id" json:"expertId"`            // Expert who was booked
	UserName  string    `bson:"user_name" json:"userName"`
	UserEmail string    `bson:"user_email" json:"userEmail"`
	UserPhone string    `bson:"user_phone" json:"userPhone"`
	Date      string    `bson:"date" json:"date"`                     // Booking date in "YYYY-MM-DD" format
	Time      string    `bson:"time" json:"time"`                     // Slot label, matched by string equality
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status    string    `bson:"status" json:"status"`                 // Pending | Confirmed | Completed
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BookingWithExpert is a booking joined with its expert's display attributes,
// as returned by the email lookup.
type BookingWithExpert struct {
	Booking `bson:",inline"`
	Expert  Expert `bson:"expert" json:"expert"`
}
