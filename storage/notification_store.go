package storage

import (
	"errors"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	Create(n *models.Notification) error
	ByID(id uint) (*models.Notification, error)
	ListByUser(userID uint) ([]models.Notification, error)
	Save(n *models.Notification) error
}

type notificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) NotificationStore {
	return &notificationStore{db: db}
}

func (s *notificationStore) Create(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *notificationStore) ByID(id uint) (*models.Notification, error) {
	var n models.Notification
	err := s.db.First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notificationStore) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *notificationStore) Save(n *models.Notification) error {
	return s.db.Save(n).Error
}
