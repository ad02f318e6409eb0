package storage

import (
	"errors"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// MessageStore persists per-booking message threads.
type MessageStore interface {
	Create(m *models.Message) error
	ByID(id uint) (*models.Message, error)
	// Thread returns a booking's messages oldest-first with senders preloaded.
	Thread(bookingID uint) ([]models.Message, error)
	// MarkThreadRead marks every unread message in the thread that was not
	// sent by readerID as read.
	MarkThreadRead(bookingID, readerID uint) error
	// CountUnread counts unread messages addressed to the user across
	// bookings they participate in (as seeker, or as host via listings).
	CountUnread(userID uint, role string) (int64, error)
}

type messageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) MessageStore {
	return &messageStore{db: db}
}

func (s *messageStore) Create(m *models.Message) error {
	return s.db.Create(m).Error
}

func (s *messageStore) ByID(id uint) (*models.Message, error) {
	var m models.Message
	err := s.db.Preload("Sender").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *messageStore) Thread(bookingID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("booking_id = ?", bookingID).
		Preload("Sender").
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *messageStore) MarkThreadRead(bookingID, readerID uint) error {
	return s.db.Model(&models.Message{}).
		Where("booking_id = ? AND sender_id <> ? AND read = ?", bookingID, readerID, false).
		Update("read", true).Error
}

func (s *messageStore) CountUnread(userID uint, role string) (int64, error) {
	q := s.db.Model(&models.Message{}).
		Joins("JOIN bookings ON bookings.id = messages.booking_id").
		Where("messages.sender_id <> ? AND messages.read = ?", userID, false)

	if role == models.RoleHost {
		q = q.Joins("JOIN listings ON listings.id = bookings.listing_id").
			Where("listings.host_id = ?", userID)
	} else {
		q = q.Where("bookings.seeker_id = ?", userID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
