package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/storage"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const testAccessSecret = "testaccesssecret"

// buildTestApp wires the full API against the in-memory store so the
// handlers, middleware and JWT verifier run exactly as in production.
func buildTestApp(t *testing.T) (*iris.Application, *storage.Memory, *utils.TokenSigner) {
	t.Helper()

	mem := storage.NewMemory()
	signer := utils.NewTokenSigner(testAccessSecret, "testrefreshsecret", time.Hour, time.Hour, nil)

	notificationService := services.NewNotificationService(mem.Notifications())
	authService := services.NewAuthService(mem.Users())
	listingService := services.NewListingService(mem.Listings())
	bookingService := services.NewBookingService(mem.Bookings(), mem.Listings(), notificationService)
	messageService := services.NewMessageService(mem.Messages(), mem.Bookings(), notificationService)

	authHandler := NewAuthHandler(authService, signer)
	listingHandler := NewListingHandler(listingService)
	bookingHandler := NewBookingHandler(bookingService)
	messageHandler := NewMessageHandler(messageService, 15)
	notificationHandler := NewNotificationHandler(notificationService)

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(testAccessSecret))
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, utils.CookieTokenExtractor)
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/signup", authHandler.Register)
		auth.Post("/login", authHandler.Login)
		auth.Post("/logout", authHandler.Logout)
		auth.Get("/me", accessTokenVerifierMiddleware, authHandler.Me)
		auth.Patch("/me", accessTokenVerifierMiddleware, authHandler.UpdateProfile)
	}

	listings := app.Party("/api/listings")
	{
		listings.Get("/", listingHandler.GetListings)
		listings.Get("/{id:uint}", listingHandler.GetListing)
		listings.Post("/", accessTokenVerifierMiddleware, utils.RequireRole(models.RoleHost), listingHandler.CreateListing)
		listings.Patch("/{id:uint}", accessTokenVerifierMiddleware, listingHandler.UpdateListing)
		listings.Delete("/{id:uint}", accessTokenVerifierMiddleware, listingHandler.DeleteListing)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware)
	{
		bookings.Post("/", utils.RequireRole(models.RoleSeeker), bookingHandler.CreateBooking)
		bookings.Get("/", bookingHandler.GetBookings)
		bookings.Patch("/{id:uint}", bookingHandler.UpdateBookingStatus)
	}

	messages := app.Party("/api/messages", accessTokenVerifierMiddleware)
	{
		messages.Post("/", messageHandler.SendMessage)
		messages.Get("/", messageHandler.GetMessages)
		messages.Get("/unread-count", messageHandler.UnreadCount)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", notificationHandler.GetNotifications)
		notifications.Patch("/{id:uint}/read", notificationHandler.MarkNotificationRead)
	}

	if err := app.Build(); err != nil {
		t.Fatal(err)
	}
	return app, mem, signer
}

func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding %q: %v", resp.Body.String(), err)
	}
	return out
}

// signupAs registers a user through the API and returns its access token.
func signupAs(t *testing.T, app *iris.Application, email, role string) string {
	t.Helper()
	resp := doJSON(app, http.MethodPost, "/api/auth/signup", "", iris.Map{
		"email":    email,
		"password": "password123",
		"name":     "Test " + role,
		"role":     role,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}
	token, _ := decodeBody(t, resp)["token"].(string)
	if token == "" {
		t.Fatalf("signup %s: no token in response", email)
	}
	return token
}

func createListingAs(t *testing.T, app *iris.Application, token string) uint {
	t.Helper()
	resp := doJSON(app, http.MethodPost, "/api/listings", token, iris.Map{
		"title":         "Cozy Room Near Stanford",
		"description":   "Quiet room with a desk",
		"location":      "Palo Alto, CA",
		"price":         45,
		"maxGuests":     2,
		"amenities":     map[string]bool{"wifi": true, "laundry": true},
		"availableFrom": "2024-12-01T00:00:00Z",
		"availableTo":   "2025-06-01T00:00:00Z",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create listing: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	listing := decodeBody(t, resp)["listing"].(map[string]interface{})
	return uint(listing["ID"].(float64))
}

func TestSignupAndLoginFlow(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp := doJSON(app, http.MethodPost, "/api/auth/signup", "", iris.Map{
		"email":    "seeker@example.com",
		"password": "password123",
		"name":     "John Seeker",
		"role":     "seeker",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["token"] == "" || body["refreshToken"] == "" {
		t.Fatal("expected a token pair in the signup response")
	}
	user := body["user"].(map[string]interface{})
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must not appear in the response")
	}
	if cookie := resp.Header().Get("Set-Cookie"); cookie == "" {
		t.Fatal("expected the auth cookie to be set")
	}

	// Duplicate email.
	resp = doJSON(app, http.MethodPost, "/api/auth/signup", "", iris.Map{
		"email":    "seeker@example.com",
		"password": "password456",
		"name":     "Dup",
		"role":     "seeker",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.Code)
	}

	// Missing fields.
	resp = doJSON(app, http.MethodPost, "/api/auth/signup", "", iris.Map{"email": "x@example.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.Code)
	}

	// Unknown role.
	resp = doJSON(app, http.MethodPost, "/api/auth/signup", "", iris.Map{
		"email":    "admin@example.com",
		"password": "password123",
		"name":     "Admin",
		"role":     "admin",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", resp.Code)
	}

	resp = doJSON(app, http.MethodPost, "/api/auth/login", "", iris.Map{
		"email":    "seeker@example.com",
		"password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(app, http.MethodPost, "/api/auth/login", "", iris.Map{
		"email":    "seeker@example.com",
		"password": "wrongpassword",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp := doJSON(app, http.MethodGet, "/api/auth/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	token := signupAs(t, app, "seeker@example.com", "seeker")
	resp = doJSON(app, http.MethodGet, "/api/auth/me", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	user := decodeBody(t, resp)["user"].(map[string]interface{})
	if user["email"] != "seeker@example.com" {
		t.Fatalf("unexpected user payload: %v", user)
	}
}

func TestListingAuthorization(t *testing.T) {
	app, _, _ := buildTestApp(t)
	hostToken := signupAs(t, app, "host@example.com", "host")
	seekerToken := signupAs(t, app, "seeker@example.com", "seeker")

	// Unauthenticated create.
	resp := doJSON(app, http.MethodPost, "/api/listings", "", iris.Map{"title": "x"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	// Seekers cannot create listings.
	resp = doJSON(app, http.MethodPost, "/api/listings", seekerToken, iris.Map{
		"title":         "Nope",
		"description":   "Nope",
		"location":      "Nowhere",
		"price":         10,
		"maxGuests":     1,
		"availableFrom": "2024-12-01T00:00:00Z",
		"availableTo":   "2025-01-01T00:00:00Z",
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seeker, got %d", resp.Code)
	}

	listingID := createListingAs(t, app, hostToken)

	// Browsing is public.
	resp = doJSON(app, http.MethodGet, "/api/listings?location=palo&minPrice=40&maxPrice=50", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	listings := decodeBody(t, resp)["listings"].([]interface{})
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}

	resp = doJSON(app, http.MethodGet, "/api/listings?minPrice=abc", "", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad minPrice, got %d", resp.Code)
	}

	resp = doJSON(app, http.MethodGet, "/api/listings/9999", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing listing, got %d", resp.Code)
	}

	// Only the owner can update.
	listingPath := fmt.Sprintf("/api/listings/%d", listingID)
	patch := iris.Map{"price": 50}
	resp = doJSON(app, http.MethodPatch, listingPath, seekerToken, patch)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner patch, got %d", resp.Code)
	}
	resp = doJSON(app, http.MethodPatch, listingPath, hostToken, patch)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner patch, got %d: %s", resp.Code, resp.Body.String())
	}
	listing := decodeBody(t, resp)["listing"].(map[string]interface{})
	if listing["price"].(float64) != 50 {
		t.Fatalf("patch not applied: %v", listing)
	}
}

func TestBookingLifecycle(t *testing.T) {
	app, _, _ := buildTestApp(t)
	hostToken := signupAs(t, app, "host@example.com", "host")
	seekerToken := signupAs(t, app, "seeker@example.com", "seeker")
	listingID := createListingAs(t, app, hostToken)

	// Hosts cannot book.
	resp := doJSON(app, http.MethodPost, "/api/bookings", hostToken, iris.Map{
		"listingId": listingID,
		"checkIn":   "2025-01-10T00:00:00Z",
		"checkOut":  "2025-01-12T00:00:00Z",
		"guests":    1,
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for host booking, got %d", resp.Code)
	}

	resp = doJSON(app, http.MethodPost, "/api/bookings", seekerToken, iris.Map{
		"listingId": listingID,
		"checkIn":   "2025-01-10T00:00:00Z",
		"checkOut":  "2025-01-12T00:00:00Z",
		"guests":    2,
		"message":   "Looking forward to it",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	booking := decodeBody(t, resp)["booking"].(map[string]interface{})
	if booking["status"] != "PENDING" {
		t.Fatalf("expected PENDING, got %v", booking["status"])
	}
	bookingID := uint(booking["ID"].(float64))
	bookingPath := fmt.Sprintf("/api/bookings/%d", bookingID)

	// Seekers cannot accept.
	resp = doJSON(app, http.MethodPatch, bookingPath, seekerToken, iris.Map{"status": "ACCEPTED"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seeker accept, got %d", resp.Code)
	}

	// Unknown status.
	resp = doJSON(app, http.MethodPatch, bookingPath, hostToken, iris.Map{"status": "APPROVED"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}

	// Unknown booking.
	resp = doJSON(app, http.MethodPatch, "/api/bookings/9999", hostToken, iris.Map{"status": "ACCEPTED"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown booking, got %d", resp.Code)
	}

	resp = doJSON(app, http.MethodPatch, bookingPath, hostToken, iris.Map{"status": "ACCEPTED"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for host accept, got %d: %s", resp.Code, resp.Body.String())
	}
	booking = decodeBody(t, resp)["booking"].(map[string]interface{})
	if booking["status"] != "ACCEPTED" {
		t.Fatalf("expected ACCEPTED, got %v", booking["status"])
	}
	if uint(booking["ID"].(float64)) != bookingID {
		t.Fatalf("unexpected booking ID %v", booking["ID"])
	}

	// Resolved bookings stay resolved.
	resp = doJSON(app, http.MethodPatch, bookingPath, hostToken, iris.Map{"status": "REJECTED"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for re-resolving, got %d", resp.Code)
	}

	// Each party sees the booking in their list.
	for _, token := range []string{seekerToken, hostToken} {
		resp = doJSON(app, http.MethodGet, "/api/bookings", token, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		bookings := decodeBody(t, resp)["bookings"].([]interface{})
		if len(bookings) != 1 {
			t.Fatalf("expected 1 booking, got %d", len(bookings))
		}
	}
}

func TestMessagingFlow(t *testing.T) {
	app, _, _ := buildTestApp(t)
	hostToken := signupAs(t, app, "host@example.com", "host")
	seekerToken := signupAs(t, app, "seeker@example.com", "seeker")
	strangerToken := signupAs(t, app, "stranger@example.com", "seeker")
	listingID := createListingAs(t, app, hostToken)

	resp := doJSON(app, http.MethodPost, "/api/bookings", seekerToken, iris.Map{
		"listingId": listingID,
		"checkIn":   "2025-01-10T00:00:00Z",
		"checkOut":  "2025-01-12T00:00:00Z",
		"guests":    1,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("booking: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	booking := decodeBody(t, resp)["booking"].(map[string]interface{})
	bookingID := uint(booking["ID"].(float64))
	threadPath := fmt.Sprintf("/api/messages?bookingId=%d", bookingID)

	resp = doJSON(app, http.MethodPost, "/api/messages", seekerToken, iris.Map{
		"bookingId": bookingID,
		"content":   "Is the room still available in January?",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	sent := decodeBody(t, resp)["message"].(map[string]interface{})
	if sent["read"] != false {
		t.Fatalf("expected new message unread, got %v", sent["read"])
	}

	// Blank content.
	resp = doJSON(app, http.MethodPost, "/api/messages", seekerToken, iris.Map{
		"bookingId": bookingID,
		"content":   "",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank content, got %d", resp.Code)
	}

	// Non-participants are shut out.
	resp = doJSON(app, http.MethodPost, "/api/messages", strangerToken, iris.Map{
		"bookingId": bookingID,
		"content":   "Hello",
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger send, got %d", resp.Code)
	}
	resp = doJSON(app, http.MethodGet, threadPath, strangerToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger read, got %d", resp.Code)
	}

	// The host has one unread message.
	resp = doJSON(app, http.MethodGet, "/api/messages/unread-count", hostToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("unread-count: expected 200, got %d", resp.Code)
	}
	counts := decodeBody(t, resp)
	if counts["count"].(float64) != 1 {
		t.Fatalf("expected 1 unread, got %v", counts["count"])
	}
	if counts["pollIntervalSeconds"].(float64) != 15 {
		t.Fatalf("expected pollIntervalSeconds 15, got %v", counts["pollIntervalSeconds"])
	}

	// Viewing the thread marks the seeker's message read.
	resp = doJSON(app, http.MethodGet, threadPath, hostToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("thread: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	thread := decodeBody(t, resp)["messages"].([]interface{})
	if len(thread) != 1 {
		t.Fatalf("expected 1 message, got %d", len(thread))
	}
	if thread[0].(map[string]interface{})["read"] != true {
		t.Fatal("expected the message to be read after the host viewed the thread")
	}

	resp = doJSON(app, http.MethodGet, "/api/messages/unread-count", hostToken, nil)
	if decodeBody(t, resp)["count"].(float64) != 0 {
		t.Fatal("expected 0 unread after viewing the thread")
	}
}

func TestNotificationsFlow(t *testing.T) {
	app, _, _ := buildTestApp(t)
	hostToken := signupAs(t, app, "host@example.com", "host")
	seekerToken := signupAs(t, app, "seeker@example.com", "seeker")
	listingID := createListingAs(t, app, hostToken)

	resp := doJSON(app, http.MethodPost, "/api/bookings", seekerToken, iris.Map{
		"listingId": listingID,
		"checkIn":   "2025-01-10T00:00:00Z",
		"checkOut":  "2025-01-12T00:00:00Z",
		"guests":    1,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("booking: expected 201, got %d", resp.Code)
	}

	// The booking request notified the host.
	resp = doJSON(app, http.MethodGet, "/api/notifications", hostToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	notifications := decodeBody(t, resp)["notifications"].([]interface{})
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	notifID := uint(notifications[0].(map[string]interface{})["id"].(float64))
	if notifID == 0 {
		t.Fatal("expected a notification ID")
	}
	readPath := fmt.Sprintf("/api/notifications/%d/read", notifID)

	// Only the recipient can mark it read.
	resp = doJSON(app, http.MethodPatch, readPath, seekerToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-recipient, got %d", resp.Code)
	}
	resp = doJSON(app, http.MethodPatch, readPath, hostToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	notification := decodeBody(t, resp)["notification"].(map[string]interface{})
	if notification["isRead"] != true {
		t.Fatalf("expected isRead true, got %v", notification["isRead"])
	}
}
