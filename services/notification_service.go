package services

import (
	"fmt"
	"log"
	"time"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"
)

// NotificationService records in-app notifications. Failures are logged
// and swallowed: a lost notification must never fail the write that
// triggered it.
type NotificationService struct {
	notifications storage.NotificationStore
}

func NewNotificationService(notifications storage.NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) notify(userID uint, typ, title, message, refType string, refID uint) {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := s.notifications.Create(n); err != nil {
		log.Printf("notification create failed for user %d: %v", userID, err)
	}
}

// BookingRequested tells the host about a new PENDING booking.
func (s *NotificationService) BookingRequested(b *models.Booking) {
	if b.Listing == nil {
		return
	}
	s.notify(
		b.Listing.HostID,
		models.NotificationBookingRequest,
		"New Booking Request",
		fmt.Sprintf("You have a new booking request for %s from %s to %s",
			b.Listing.Title, b.CheckIn.Format("Jan 2, 2006"), b.CheckOut.Format("Jan 2, 2006")),
		"booking",
		b.ID,
	)
}

// BookingResolved tells the counterparty about a status change: the seeker
// for accept/reject, the host for a cancellation.
func (s *NotificationService) BookingResolved(b *models.Booking) {
	if b.Listing == nil {
		return
	}

	recipient := b.SeekerID
	if b.Status == models.BookingCancelled {
		recipient = b.Listing.HostID
	}
	s.notify(
		recipient,
		models.NotificationBookingStatus,
		"Booking Status Updated",
		fmt.Sprintf("The booking for %s is now %s", b.Listing.Title, b.Status),
		"booking",
		b.ID,
	)
}

// MessageReceived tells the other participant about a new message.
func (s *NotificationService) MessageReceived(b *models.Booking, m *models.Message) {
	if b.Listing == nil {
		return
	}

	recipient := b.SeekerID
	if m.SenderID == b.SeekerID {
		recipient = b.Listing.HostID
	}
	s.notify(
		recipient,
		models.NotificationMessage,
		"New Message",
		fmt.Sprintf("You have a new message about %s", b.Listing.Title),
		"message",
		m.ID,
	)
}

func (s *NotificationService) ListFor(userID uint) ([]models.Notification, error) {
	return s.notifications.ListByUser(userID)
}

func (s *NotificationService) MarkRead(id, userID uint) (*models.Notification, error) {
	n, err := s.notifications.ByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	if n.UserID != userID {
		return nil, ErrForbidden
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := s.notifications.Save(n); err != nil {
		return nil, err
	}
	return n, nil
}
