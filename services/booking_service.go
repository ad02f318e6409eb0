package services

import (
	"time"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"

	"golang.org/x/exp/slices"
)

// BookingService runs the booking lifecycle: create as PENDING, then a
// single transition to a terminal status under the transition policy.
type BookingService struct {
	bookings      storage.BookingStore
	listings      storage.ListingStore
	notifications *NotificationService
}

func NewBookingService(bookings storage.BookingStore, listings storage.ListingStore, notifications *NotificationService) *BookingService {
	return &BookingService{
		bookings:      bookings,
		listings:      listings,
		notifications: notifications,
	}
}

type BookingParams struct {
	ListingID uint
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Message   string
}

func (s *BookingService) Create(seekerID uint, p BookingParams) (*models.Booking, error) {
	if !p.CheckIn.Before(p.CheckOut) {
		return nil, invalidf("checkIn must be before checkOut")
	}

	listing, err := s.listings.ByID(p.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	if listing.HostID == seekerID {
		return nil, ErrForbidden
	}

	// Guest count is not checked against the listing's capacity; the
	// original never enforced it and callers rely on that.
	booking := &models.Booking{
		ListingID: p.ListingID,
		SeekerID:  seekerID,
		Status:    models.BookingPending,
		CheckIn:   p.CheckIn,
		CheckOut:  p.CheckOut,
		Guests:    p.Guests,
		Message:   p.Message,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}

	full, err := s.bookings.ByID(booking.ID)
	if err != nil {
		return nil, err
	}
	s.notifications.BookingRequested(full)
	return full, nil
}

// ListFor returns bookings visible to the user: their own requests for a
// seeker, requests against their listings for a host. Newest first.
func (s *BookingService) ListFor(userID uint, role string) ([]models.Booking, error) {
	if role == models.RoleHost {
		return s.bookings.ListByHost(userID)
	}
	return s.bookings.ListBySeeker(userID)
}

func (s *BookingService) UpdateStatus(id, actorID uint, target string) (*models.Booking, error) {
	if !slices.Contains(TargetStatuses, target) {
		return nil, invalidf("invalid status %q", target)
	}

	booking, err := s.bookings.ByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !CanTransition(actorID, booking, target) {
		return nil, ErrForbidden
	}
	if booking.IsTerminal() {
		return nil, ErrBookingResolved
	}

	booking.Status = target
	if err := s.bookings.Save(booking); err != nil {
		return nil, err
	}

	full, err := s.bookings.ByID(id)
	if err != nil {
		return nil, err
	}
	s.notifications.BookingResolved(full)
	return full, nil
}
