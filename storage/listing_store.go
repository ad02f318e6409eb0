package storage

import (
	"errors"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// ListingFilter narrows public listing searches. Zero values mean "no
// constraint"; prices are inclusive bounds.
type ListingFilter struct {
	Location string
	MinPrice *float64
	MaxPrice *float64
}

// ListingStore persists listings. Reads preload the host.
type ListingStore interface {
	Create(l *models.Listing) error
	ByID(id uint) (*models.Listing, error)
	List(f ListingFilter) ([]models.Listing, error)
	Save(l *models.Listing) error
	Delete(id uint) error
}

type listingStore struct {
	db *gorm.DB
}

func NewListingStore(db *gorm.DB) ListingStore {
	return &listingStore{db: db}
}

func (s *listingStore) Create(l *models.Listing) error {
	return s.db.Create(l).Error
}

func (s *listingStore) ByID(id uint) (*models.Listing, error) {
	var l models.Listing
	err := s.db.Preload("Host").First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *listingStore) List(f ListingFilter) ([]models.Listing, error) {
	q := s.db.Preload("Host").Order("created_at DESC")
	if f.Location != "" {
		q = q.Where("lower(location) LIKE lower(?)", "%"+f.Location+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var listings []models.Listing
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *listingStore) Save(l *models.Listing) error {
	return s.db.Save(l).Error
}

func (s *listingStore) Delete(id uint) error {
	return s.db.Delete(&models.Listing{}, id).Error
}
