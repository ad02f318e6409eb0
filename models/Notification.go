package models

import "time"

const (
	NotificationBookingRequest = "booking_request"
	NotificationBookingStatus  = "booking_status"
	NotificationMessage        = "message"
)

// Notification is an in-app notification row created as a side effect of
// booking and message writes.
type Notification struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;index"`

	Type    string `json:"type" gorm:"size:32;index"`
	Title   string `json:"title" gorm:"size:100"`
	Message string `json:"message" gorm:"size:500"`

	RefType string `json:"refType" gorm:"size:32"` // booking, message
	RefID   uint   `json:"refID"`

	IsRead    bool       `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}
