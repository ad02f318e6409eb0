package services

import (
	"strings"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"
)

// MessageService owns per-booking message threads. Every operation is
// gated on booking participancy: the seeker or the listing's host.
type MessageService struct {
	messages      storage.MessageStore
	bookings      storage.BookingStore
	notifications *NotificationService
}

func NewMessageService(messages storage.MessageStore, bookings storage.BookingStore, notifications *NotificationService) *MessageService {
	return &MessageService{
		messages:      messages,
		bookings:      bookings,
		notifications: notifications,
	}
}

func isParticipant(b *models.Booking, userID uint) bool {
	if b.SeekerID == userID {
		return true
	}
	return b.Listing != nil && b.Listing.HostID == userID
}

func (s *MessageService) Send(bookingID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidf("message content is required")
	}

	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !isParticipant(booking, senderID) {
		return nil, ErrForbidden
	}

	message := &models.Message{
		BookingID: bookingID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	full, err := s.messages.ByID(message.ID)
	if err != nil {
		return nil, err
	}
	s.notifications.MessageReceived(booking, full)
	return full, nil
}

// Thread returns a booking's messages oldest-first. Viewing the thread
// marks every message from the other participant as read, so the returned
// payload already reflects the new read state.
func (s *MessageService) Thread(bookingID, requesterID uint) ([]models.Message, error) {
	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !isParticipant(booking, requesterID) {
		return nil, ErrForbidden
	}

	if err := s.messages.MarkThreadRead(bookingID, requesterID); err != nil {
		return nil, err
	}
	return s.messages.Thread(bookingID)
}

func (s *MessageService) UnreadCount(userID uint, role string) (int64, error) {
	return s.messages.CountUnread(userID, role)
}
