package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "PENDING"
	BookingAccepted  = "ACCEPTED"
	BookingRejected  = "REJECTED"
	BookingCancelled = "CANCELLED"
)

// Booking is a seeker's request to stay at a listing. It starts PENDING
// and moves to exactly one of the terminal states; rows are never deleted.
type Booking struct {
	gorm.Model
	ListingID uint      `json:"listingID" gorm:"index"`
	SeekerID  uint      `json:"seekerID" gorm:"index"`
	Status    string    `json:"status" gorm:"type:varchar(20);index"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	Guests    int       `json:"guests"`
	Message   string    `json:"message" gorm:"size:2000"` // optional note to the host

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Seeker  *User    `json:"seeker,omitempty" gorm:"foreignKey:SeekerID"`
}

// IsTerminal reports whether the booking has left PENDING; no transition
// is defined out of a terminal status.
func (b *Booking) IsTerminal() bool {
	return b.Status != BookingPending
}
