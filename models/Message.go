package models

import (
	"gorm.io/gorm"
)

// Message belongs to a booking's thread. Only the booking's seeker and the
// listing's host may send or read it. Read flips to true when the other
// participant fetches the thread.
type Message struct {
	gorm.Model
	BookingID uint   `json:"bookingID" gorm:"index"`
	SenderID  uint   `json:"senderID" gorm:"index"`
	Content   string `json:"content" gorm:"size:5000"`
	Read      bool   `json:"read" gorm:"default:false;index"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
