package storage

import (
	"errors"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// BookingStore persists bookings. Reads preload the listing (with its
// host) and the seeker; lists are newest-created first.
type BookingStore interface {
	Create(b *models.Booking) error
	ByID(id uint) (*models.Booking, error)
	Save(b *models.Booking) error
	ListBySeeker(seekerID uint) ([]models.Booking, error)
	ListByHost(hostID uint) ([]models.Booking, error)
}

type bookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) BookingStore {
	return &bookingStore{db: db}
}

func (s *bookingStore) Create(b *models.Booking) error {
	return s.db.Create(b).Error
}

func (s *bookingStore) ByID(id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.db.
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Seeker").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *bookingStore) Save(b *models.Booking) error {
	return s.db.Save(b).Error
}

func (s *bookingStore) ListBySeeker(seekerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Where("seeker_id = ?", seekerID).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Seeker").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingStore) ListByHost(hostID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("listings.host_id = ?", hostID).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Seeker").
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
