package models

// Slot is a single unit of availability embedded in an Expert document.
type Slot struct {
	Date     string `bson:"date" json:"date"`          // Calendar day in "YYYY-MM-DD" format
	Time     string `bson:"time" json:"time"`          // Display label, e.g. "10:00 AM"
	IsBooked bool   `bson:"isBooked" json:"isBooked"`  // Flipped to true by the booking flow, never back
}

// Expert represents a bookable professional profile.
type Expert struct {
	ID           string  `bson:"id" json:"id"`                     // Unique expert identifier (UUID)
	Name         string  `bson:"name" json:"name"`
	Category     string  `bson:"category" json:"category"`         // e.g. "Technology", "Finance"
	Experience   int     `bson:"experience" json:"experience"`     // Years of experience
	Rating       float64 `bson:"rating" json:"rating"`
	Description  string  `bson:"description" json:"description"`
	ProfileImage string  `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Slots        []Slot  `bson:"slots" json:"slots"`
}
