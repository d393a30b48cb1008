// Package models defines the persisted entities of the travel guide API
// together with the static reference data served alongside them.
package models

import "time"

// DefaultLanguage is the preferred language assigned to users who do not pick one.
const DefaultLanguage = "en"

// User is a registered account. Trips and bookings reference it by ID.
type User struct {
	// ID is the auto-incrementing identifier of the user.
	ID int64 `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// Password is the stored credential. It is never serialised.
	Password string `json:"-"`
	// Email is the contact address of the user.
	Email string `json:"email"`
	// FullName is the optional display name.
	FullName *string `json:"fullName"`
	// PreferredLanguage is a language code, "en" unless chosen otherwise.
	PreferredLanguage string `json:"preferredLanguage"`
	// ProfileImage is an optional avatar URL.
	ProfileImage *string `json:"profileImage"`
	// CreatedAt is set once on insert.
	CreatedAt time.Time `json:"createdAt"`
}

// Trip is a planned journey produced by the trip planner.
type Trip struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Name         string     `json:"name"`
	Destinations []string   `json:"destinations"`
	Duration     string     `json:"duration"`
	TravelStyle  string     `json:"travelStyle"`
	Budget       string     `json:"budget"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Itinerary    *Itinerary `json:"itinerary"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Trip durations.
const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

// Booking is a reservation for a destination over a date range.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	GroupSize   int       `json:"groupSize"`
	AddOns      []string  `json:"addOns"`
	TotalCost   int       `json:"totalCost"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Destination is an entry of the static destination catalog.
type Destination struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
}

// Session binds a browser session id to an authenticated user.
type Session struct {
	// ID is the opaque value carried in the session cookie.
	ID string
	// UserID is the owner of the session.
	UserID int64
	// ExpiresAt is the moment after which the session is ignored and pruned.
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
