// Package repository provides the persistence layer of the travel guide API:
// a single Storage contract with an in-memory and a PostgreSQL implementation.
package repository

import (
	"context"
	"errors"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/session"
)

// ErrUsernameTaken is returned by CreateUser when the username is already in use.
var ErrUsernameTaken = errors.New("username already taken")

// Storage is implemented by every backing store. Get* methods return a nil
// record and a nil error when no row matches.
type Storage interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	GetTripsByUserID(ctx context.Context, userID int64) ([]models.Trip, error)
	CreateTrip(ctx context.Context, trip models.Trip) (*models.Trip, error)

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsByUserID(ctx context.Context, userID int64) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error)

	CreateContactMessage(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error)

	// Sessions returns the session store sharing this storage's backend.
	Sessions() session.Store
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// DemoUser is the account every storage is seeded with so trips and bookings
// created without a session have a valid owner. passwordHash is stored as is.
func DemoUser(passwordHash string) models.User {
	fullName := "Demo User"
	image := "https://randomuser.me/api/portraits/men/32.jpg"
	return models.User{
		Username:          "demo",
		Password:          passwordHash,
		Email:             "demo@example.com",
		FullName:          &fullName,
		PreferredLanguage: models.DefaultLanguage,
		ProfileImage:      &image,
	}
}

// SeedUser creates user unless an account with the same username exists, and
// returns the stored record either way.
func SeedUser(ctx context.Context, s Storage, user models.User) (*models.User, error) {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.CreateUser(ctx, user)
}
