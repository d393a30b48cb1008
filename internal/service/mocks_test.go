package service

import (
	"context"

	"github.com/atinyakov/travelguide/internal/models"
)

type mockTripRepo struct {
	GetTripFunc          func(ctx context.Context, id int64) (*models.Trip, error)
	GetTripsByUserIDFunc func(ctx context.Context, userID int64) ([]models.Trip, error)
	CreateTripFunc       func(ctx context.Context, trip models.Trip) (*models.Trip, error)
}

func (m *mockTripRepo) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	return m.GetTripFunc(ctx, id)
}
func (m *mockTripRepo) GetTripsByUserID(ctx context.Context, userID int64) ([]models.Trip, error) {
	return m.GetTripsByUserIDFunc(ctx, userID)
}
func (m *mockTripRepo) CreateTrip(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	return m.CreateTripFunc(ctx, trip)
}

type mockBookingRepo struct {
	GetBookingFunc          func(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsByUserIDFunc func(ctx context.Context, userID int64) ([]models.Booking, error)
	CreateBookingFunc       func(ctx context.Context, booking models.Booking) (*models.Booking, error)
}

func (m *mockBookingRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return m.GetBookingFunc(ctx, id)
}
func (m *mockBookingRepo) GetBookingsByUserID(ctx context.Context, userID int64) ([]models.Booking, error) {
	return m.GetBookingsByUserIDFunc(ctx, userID)
}
func (m *mockBookingRepo) CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	return m.CreateBookingFunc(ctx, booking)
}

type mockContactRepo struct {
	CreateContactMessageFunc func(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error)
}

func (m *mockContactRepo) CreateContactMessage(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	return m.CreateContactMessageFunc(ctx, msg)
}

type mockUserRepo struct {
	GetUserFunc           func(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	CreateUserFunc        func(ctx context.Context, user models.User) (*models.User, error)
}

func (m *mockUserRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return m.GetUserFunc(ctx, id)
}
func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetUserByUsernameFunc(ctx, username)
}
func (m *mockUserRepo) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	return m.CreateUserFunc(ctx, user)
}

func intPtr(v int) *int { return &v }
