package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/session"
)

// MemoryStorage is a non-durable Storage keeping every entity in maps.
// Identifiers start at 1 per entity type and reset with the process.
type MemoryStorage struct {
	mu sync.RWMutex

	users           map[int64]models.User
	trips           map[int64]models.Trip
	bookings        map[int64]models.Booking
	contactMessages map[int64]models.ContactMessage

	nextUserID    int64
	nextTripID    int64
	nextBookingID int64
	nextMessageID int64

	sessions *session.MemoryStore
	now      func() time.Time
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:           make(map[int64]models.User),
		trips:           make(map[int64]models.Trip),
		bookings:        make(map[int64]models.Booking),
		contactMessages: make(map[int64]models.ContactMessage),
		nextUserID:      1,
		nextTripID:      1,
		nextBookingID:   1,
		nextMessageID:   1,
		sessions:        session.NewMemoryStore(),
		now:             time.Now,
	}
}

// Sessions implements Storage.
func (m *MemoryStorage) Sessions() session.Store {
	return m.sessions
}

// Ping implements Storage. Memory is always reachable.
func (m *MemoryStorage) Ping(context.Context) error {
	return nil
}

// Users ------------------------------------------------------------------------

func (m *MemoryStorage) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (m *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// CreateUser stores user. Usernames are unique, as in the database schema.
func (m *MemoryStorage) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, ErrUsernameTaken
		}
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = models.DefaultLanguage
	}
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = m.now().UTC()

	m.users[user.ID] = *cloneUser(user)
	return cloneUser(user), nil
}

// Trips ------------------------------------------------------------------------

func (m *MemoryStorage) GetTrip(_ context.Context, id int64) (*models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, nil
	}
	return cloneTrip(t), nil
}

func (m *MemoryStorage) GetTripsByUserID(_ context.Context, userID int64) ([]models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Trip{}
	for _, t := range m.trips {
		if t.UserID == userID {
			out = append(out, *cloneTrip(t))
		}
	}
	slices.SortFunc(out, func(a, b models.Trip) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryStorage) CreateTrip(_ context.Context, trip models.Trip) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip.ID = m.nextTripID
	m.nextTripID++
	trip.CreatedAt = m.now().UTC()

	m.trips[trip.ID] = *cloneTrip(trip)
	return cloneTrip(trip), nil
}

// Bookings ---------------------------------------------------------------------

func (m *MemoryStorage) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (m *MemoryStorage) GetBookingsByUserID(_ context.Context, userID int64) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *cloneBooking(b))
		}
	}
	slices.SortFunc(out, func(a, b models.Booking) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryStorage) CreateBooking(_ context.Context, booking models.Booking) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	booking.ID = m.nextBookingID
	m.nextBookingID++
	booking.CreatedAt = m.now().UTC()

	m.bookings[booking.ID] = *cloneBooking(booking)
	return cloneBooking(booking), nil
}

// Contact messages -------------------------------------------------------------

func (m *MemoryStorage) CreateContactMessage(_ context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextMessageID
	m.nextMessageID++
	msg.CreatedAt = m.now().UTC()

	m.contactMessages[msg.ID] = msg
	out := msg
	return &out, nil
}

func cloneUser(u models.User) *models.User {
	if u.FullName != nil {
		v := *u.FullName
		u.FullName = &v
	}
	if u.ProfileImage != nil {
		v := *u.ProfileImage
		u.ProfileImage = &v
	}
	return &u
}

func cloneTrip(t models.Trip) *models.Trip {
	t.Destinations = slices.Clone(t.Destinations)
	if t.StartDate != nil {
		v := *t.StartDate
		t.StartDate = &v
	}
	if t.EndDate != nil {
		v := *t.EndDate
		t.EndDate = &v
	}
	if t.Itinerary != nil {
		it := *t.Itinerary
		it.Days = slices.Clone(t.Itinerary.Days)
		for i, d := range it.Days {
			if d.Insight != nil {
				ins := *d.Insight
				it.Days[i].Insight = &ins
			}
		}
		t.Itinerary = &it
	}
	return &t
}

func cloneBooking(b models.Booking) *models.Booking {
	b.AddOns = slices.Clone(b.AddOns)
	return &b
}
