package services

import (
	"time"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"
)

type ListingService struct {
	listings storage.ListingStore
}

func NewListingService(listings storage.ListingStore) *ListingService {
	return &ListingService{listings: listings}
}

type ListingParams struct {
	Title         string
	Description   string
	Location      string
	Price         float64
	MaxGuests     int
	Amenities     map[string]bool
	Photos        []string
	AvailableFrom time.Time
	AvailableTo   time.Time
}

func (s *ListingService) Create(hostID uint, p ListingParams) (*models.Listing, error) {
	if p.AvailableTo.Before(p.AvailableFrom) {
		return nil, invalidf("availableFrom must not be after availableTo")
	}

	listing := &models.Listing{
		HostID:        hostID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		Price:         p.Price,
		MaxGuests:     p.MaxGuests,
		Amenities:     models.AmenitiesJSON(p.Amenities),
		Photos:        models.PhotosJSON(p.Photos),
		AvailableFrom: p.AvailableFrom,
		AvailableTo:   p.AvailableTo,
	}
	if err := s.listings.Create(listing); err != nil {
		return nil, err
	}
	return s.listings.ByID(listing.ID)
}

func (s *ListingService) Get(id uint) (*models.Listing, error) {
	listing, err := s.listings.ByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

func (s *ListingService) List(f storage.ListingFilter) ([]models.Listing, error) {
	return s.listings.List(f)
}

// ListingUpdate carries a partial update; nil fields are untouched.
type ListingUpdate struct {
	Title         *string
	Description   *string
	Location      *string
	Price         *float64
	MaxGuests     *int
	Amenities     map[string]bool
	Photos        []string
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

func (s *ListingService) Update(id, actorID uint, upd ListingUpdate) (*models.Listing, error) {
	listing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if listing.HostID != actorID {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		listing.Title = *upd.Title
	}
	if upd.Description != nil {
		listing.Description = *upd.Description
	}
	if upd.Location != nil {
		listing.Location = *upd.Location
	}
	if upd.Price != nil {
		listing.Price = *upd.Price
	}
	if upd.MaxGuests != nil {
		listing.MaxGuests = *upd.MaxGuests
	}
	if upd.Amenities != nil {
		listing.Amenities = models.AmenitiesJSON(upd.Amenities)
	}
	if upd.Photos != nil {
		listing.Photos = models.PhotosJSON(upd.Photos)
	}
	if upd.AvailableFrom != nil {
		listing.AvailableFrom = *upd.AvailableFrom
	}
	if upd.AvailableTo != nil {
		listing.AvailableTo = *upd.AvailableTo
	}

	if listing.AvailableTo.Before(listing.AvailableFrom) {
		return nil, invalidf("availableFrom must not be after availableTo")
	}

	if err := s.listings.Save(listing); err != nil {
		return nil, err
	}
	return s.listings.ByID(id)
}

func (s *ListingService) Delete(id, actorID uint) error {
	listing, err := s.Get(id)
	if err != nil {
		return err
	}
	if listing.HostID != actorID {
		return ErrForbidden
	}
	return s.listings.Delete(id)
}
