package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// Memory implements every store interface on top of plain maps. It stands
// in for Postgres in tests; behavior (ordering, preloads, read-marking)
// mirrors the gorm stores.
type Memory struct {
	mu            sync.Mutex
	users         map[uint]models.User
	listings      map[uint]models.Listing
	bookings      map[uint]models.Booking
	messages      map[uint]models.Message
	notifications map[uint]models.Notification

	// One sequence per table, the way Postgres allocates serial IDs.
	lastUserID         uint
	lastListingID      uint
	lastBookingID      uint
	lastMessageID      uint
	lastNotificationID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:         map[uint]models.User{},
		listings:      map[uint]models.Listing{},
		bookings:      map[uint]models.Booking{},
		messages:      map[uint]models.Message{},
		notifications: map[uint]models.Notification{},
	}
}

// --- UserStore

func (m *Memory) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID++
	u.ID = m.lastUserID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) ByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) ByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) Save(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

// --- ListingStore

func (m *Memory) CreateListing(l *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListingID++
	l.ID = m.lastListingID
	l.CreatedAt = time.Now()
	m.listings[l.ID] = *l
	return nil
}

func (m *Memory) listingByID(id uint) (*models.Listing, error) {
	l, ok := m.listings[id]
	if !ok || l.DeletedAt.Valid {
		return nil, nil
	}
	l.Host = m.users[l.HostID]
	return &l, nil
}

func (m *Memory) ListingByID(id uint) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listingByID(id)
}

func (m *Memory) ListListings(f ListingFilter) ([]models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Listing
	for _, l := range m.listings {
		if l.DeletedAt.Valid {
			continue
		}
		if f.Location != "" &&
			!strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
			continue
		}
		if f.MinPrice != nil && l.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && l.Price > *f.MaxPrice {
			continue
		}
		l.Host = m.users[l.HostID]
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) SaveListing(l *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *l
	saved.Host = models.User{}
	m.listings[l.ID] = saved
	return nil
}

// DeleteListing soft-deletes: the row stays so booking joins keep
// matching it, while lookups and browse treat it as gone.
func (m *Memory) DeleteListing(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok {
		return nil
	}
	l.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	m.listings[l.ID] = l
	return nil
}

// --- BookingStore

func (m *Memory) CreateBooking(b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastBookingID++
	b.ID = m.lastBookingID
	b.CreatedAt = time.Now()
	stored := *b
	stored.Listing = nil
	stored.Seeker = nil
	m.bookings[b.ID] = stored
	return nil
}

func (m *Memory) bookingByID(id uint) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	if listing, _ := m.listingByID(b.ListingID); listing != nil {
		b.Listing = listing
	}
	if seeker, ok := m.users[b.SeekerID]; ok {
		seeker := seeker
		b.Seeker = &seeker
	}
	return &b, nil
}

func (m *Memory) BookingByID(id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingByID(id)
}

func (m *Memory) SaveBooking(b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *b
	stored.Listing = nil
	stored.Seeker = nil
	m.bookings[b.ID] = stored
	return nil
}

func (m *Memory) ListBySeeker(seekerID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id, b := range m.bookings {
		if b.SeekerID != seekerID {
			continue
		}
		full, _ := m.bookingByID(id)
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) ListByHost(hostID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id, b := range m.bookings {
		listing, ok := m.listings[b.ListingID]
		if !ok || listing.HostID != hostID {
			continue
		}
		full, _ := m.bookingByID(id)
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --- MessageStore

func (m *Memory) CreateMessage(msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMessageID++
	msg.ID = m.lastMessageID
	msg.CreatedAt = time.Now()
	stored := *msg
	stored.Sender = nil
	m.messages[msg.ID] = stored
	return nil
}

func (m *Memory) messageByID(id uint) (*models.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, nil
	}
	if sender, ok := m.users[msg.SenderID]; ok {
		sender := sender
		msg.Sender = &sender
	}
	return &msg, nil
}

func (m *Memory) MessageByID(id uint) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messageByID(id)
}

func (m *Memory) Thread(bookingID uint) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for id, msg := range m.messages {
		if msg.BookingID != bookingID {
			continue
		}
		full, _ := m.messageByID(id)
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) MarkThreadRead(bookingID, readerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, msg := range m.messages {
		if msg.BookingID == bookingID && msg.SenderID != readerID && !msg.Read {
			msg.Read = true
			m.messages[id] = msg
		}
	}
	return nil
}

func (m *Memory) CountUnread(userID uint, role string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.Read {
			continue
		}
		booking, ok := m.bookings[msg.BookingID]
		if !ok {
			continue
		}
		if role == models.RoleHost {
			listing, ok := m.listings[booking.ListingID]
			if !ok || listing.HostID != userID {
				continue
			}
		} else if booking.SeekerID != userID {
			continue
		}
		count++
	}
	return count, nil
}

// --- NotificationStore

func (m *Memory) CreateNotification(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastNotificationID++
	n.ID = m.lastNotificationID
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = *n
	return nil
}

func (m *Memory) NotificationByID(id uint) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *Memory) ListNotifications(userID uint) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) SaveNotification(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = *n
	return nil
}

// --- store views

// Users returns the Memory as a UserStore; the remaining views adapt the
// entity-suffixed methods onto the store interfaces.
func (m *Memory) Users() UserStore                 { return m }
func (m *Memory) Listings() ListingStore           { return memoryListings{m} }
func (m *Memory) Bookings() BookingStore           { return memoryBookings{m} }
func (m *Memory) Messages() MessageStore           { return memoryMessages{m} }
func (m *Memory) Notifications() NotificationStore { return memoryNotifications{m} }

type memoryListings struct{ m *Memory }

func (v memoryListings) Create(l *models.Listing) error             { return v.m.CreateListing(l) }
func (v memoryListings) ByID(id uint) (*models.Listing, error)      { return v.m.ListingByID(id) }
func (v memoryListings) List(f ListingFilter) ([]models.Listing, error) {
	return v.m.ListListings(f)
}
func (v memoryListings) Save(l *models.Listing) error { return v.m.SaveListing(l) }
func (v memoryListings) Delete(id uint) error         { return v.m.DeleteListing(id) }

type memoryBookings struct{ m *Memory }

func (v memoryBookings) Create(b *models.Booking) error        { return v.m.CreateBooking(b) }
func (v memoryBookings) ByID(id uint) (*models.Booking, error) { return v.m.BookingByID(id) }
func (v memoryBookings) Save(b *models.Booking) error          { return v.m.SaveBooking(b) }
func (v memoryBookings) ListBySeeker(seekerID uint) ([]models.Booking, error) {
	return v.m.ListBySeeker(seekerID)
}
func (v memoryBookings) ListByHost(hostID uint) ([]models.Booking, error) {
	return v.m.ListByHost(hostID)
}

type memoryMessages struct{ m *Memory }

func (v memoryMessages) Create(msg *models.Message) error      { return v.m.CreateMessage(msg) }
func (v memoryMessages) ByID(id uint) (*models.Message, error) { return v.m.MessageByID(id) }
func (v memoryMessages) Thread(bookingID uint) ([]models.Message, error) {
	return v.m.Thread(bookingID)
}
func (v memoryMessages) MarkThreadRead(bookingID, readerID uint) error {
	return v.m.MarkThreadRead(bookingID, readerID)
}
func (v memoryMessages) CountUnread(userID uint, role string) (int64, error) {
	return v.m.CountUnread(userID, role)
}

type memoryNotifications struct{ m *Memory }

func (v memoryNotifications) Create(n *models.Notification) error { return v.m.CreateNotification(n) }
func (v memoryNotifications) ByID(id uint) (*models.Notification, error) {
	return v.m.NotificationByID(id)
}
func (v memoryNotifications) ListByUser(userID uint) ([]models.Notification, error) {
	return v.m.ListNotifications(userID)
}
func (v memoryNotifications) Save(n *models.Notification) error { return v.m.SaveNotification(n) }
