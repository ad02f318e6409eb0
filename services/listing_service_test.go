package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"
)

func newListingFixture(t *testing.T) (*storage.Memory, *ListingService, *models.User) {
	t.Helper()
	mem := storage.NewMemory()
	host := &models.User{Email: "host@example.com", Name: "Sarah Host", Role: models.RoleHost}
	if err := mem.Users().Create(host); err != nil {
		t.Fatal(err)
	}
	return mem, NewListingService(mem.Listings()), host
}

func listingParams(title, location string, price float64) ListingParams {
	return ListingParams{
		Title:         title,
		Description:   "A place to stay",
		Location:      location,
		Price:         price,
		MaxGuests:     2,
		AvailableFrom: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		AvailableTo:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateListingValidatesWindow(t *testing.T) {
	_, listings, host := newListingFixture(t)

	p := listingParams("Room", "Palo Alto, CA", 45)
	p.AvailableFrom, p.AvailableTo = p.AvailableTo, p.AvailableFrom

	var validationErr *ValidationError
	if _, err := listings.Create(host.ID, p); !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateListingDropsUnknownAmenities(t *testing.T) {
	_, listings, host := newListingFixture(t)

	p := listingParams("Room", "Palo Alto, CA", 45)
	p.Amenities = map[string]bool{"wifi": true, "pool": true, "meals": false}

	listing, err := listings.Create(host.ID, p)
	if err != nil {
		t.Fatal(err)
	}

	var amenities map[string]bool
	if err := json.Unmarshal(listing.Amenities, &amenities); err != nil {
		t.Fatal(err)
	}
	if !amenities["wifi"] {
		t.Fatal("expected wifi to survive")
	}
	if _, ok := amenities["pool"]; ok {
		t.Fatal("expected unknown tag pool to be dropped")
	}
	if v, ok := amenities["meals"]; !ok || v {
		t.Fatalf("expected meals=false to survive, got %v %v", v, ok)
	}
}

func TestListFilters(t *testing.T) {
	_, listings, host := newListingFixture(t)

	for _, p := range []ListingParams{
		listingParams("Cozy Room Near Stanford", "Palo Alto, CA", 45),
		listingParams("Spacious Home in Berkeley", "Berkeley, CA", 55),
		listingParams("Modern Apartment Near Campus", "Cambridge, MA", 60),
	} {
		if _, err := listings.Create(host.ID, p); err != nil {
			t.Fatal(err)
		}
	}

	minPrice, maxPrice := 50.0, 60.0
	priced, err := listings.List(storage.ListingFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatal(err)
	}
	if len(priced) != 2 {
		t.Fatalf("expected 2 listings in [50, 60], got %d", len(priced))
	}
	for _, l := range priced {
		if l.Price < minPrice || l.Price > maxPrice {
			t.Fatalf("price %v out of range", l.Price)
		}
	}

	located, err := listings.List(storage.ListingFilter{Location: "berkeley"})
	if err != nil {
		t.Fatal(err)
	}
	if len(located) != 1 || located[0].Location != "Berkeley, CA" {
		t.Fatalf("expected the Berkeley listing, got %+v", located)
	}

	all, err := listings.List(storage.ListingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(all))
	}
	// Newest first.
	if all[0].Title != "Modern Apartment Near Campus" {
		t.Fatalf("expected newest listing first, got %s", all[0].Title)
	}
}

func TestUpdateListingOwnership(t *testing.T) {
	mem, listings, host := newListingFixture(t)

	other := &models.User{Email: "other@example.com", Name: "Other Host", Role: models.RoleHost}
	if err := mem.Users().Create(other); err != nil {
		t.Fatal(err)
	}

	listing, err := listings.Create(host.ID, listingParams("Room", "Palo Alto, CA", 45))
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Updated Room"
	if _, err := listings.Update(listing.ID, other.ID, ListingUpdate{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	newPrice := 50.0
	updated, err := listings.Update(listing.ID, host.ID, ListingUpdate{Title: &newTitle, Price: &newPrice})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != newTitle || updated.Price != newPrice {
		t.Fatalf("update not applied: %+v", updated)
	}
	// Untouched fields survive a partial update.
	if updated.Location != "Palo Alto, CA" || updated.MaxGuests != 2 {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
}

func TestDeleteListingOwnership(t *testing.T) {
	mem, listings, host := newListingFixture(t)

	other := &models.User{Email: "other@example.com", Name: "Other Host", Role: models.RoleHost}
	if err := mem.Users().Create(other); err != nil {
		t.Fatal(err)
	}

	listing, err := listings.Create(host.ID, listingParams("Room", "Palo Alto, CA", 45))
	if err != nil {
		t.Fatal(err)
	}

	if err := listings.Delete(listing.ID, other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := listings.Delete(listing.ID, host.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := listings.Get(listing.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSignupAndLogin(t *testing.T) {
	mem := storage.NewMemory()
	auth := NewAuthService(mem.Users())

	user, err := auth.Signup(SignupParams{
		Email:    "Seeker@Example.com",
		Password: "password123",
		Name:     "John Seeker",
		Role:     models.RoleSeeker,
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "seeker@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Password == "password123" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := auth.Signup(SignupParams{
		Email:    "seeker@example.com",
		Password: "password456",
		Name:     "Dup",
		Role:     models.RoleSeeker,
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := auth.Login("seeker@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login("seeker@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
