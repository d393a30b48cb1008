package service

import (
	"context"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/validation"
)

// BookingRepository defines the persistence operations required by BookingService.
type BookingRepository interface {
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsByUserID(ctx context.Context, userID int64) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error)
}

// BookingInput is the accepted body of a booking request.
//
// The date order and the group size range are checked by the booking form
// only; the server stores whatever well-formed values it receives.
type BookingInput struct {
	Destination string       `json:"destination" validate:"required"`
	StartDate   *models.Date `json:"startDate" validate:"required"`
	EndDate     *models.Date `json:"endDate" validate:"required"`
	GroupSize   *int         `json:"groupSize" validate:"required"`
	AddOns      []string     `json:"addOns"`
	TotalCost   *int         `json:"totalCost" validate:"required"`
	Status      string       `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// BookingService validates and stores bookings.
type BookingService struct {
	repo     BookingRepository
	validate *validation.Validator
}

// NewBookingService constructs a BookingService backed by repo.
func NewBookingService(repo BookingRepository, v *validation.Validator) *BookingService {
	return &BookingService{repo: repo, validate: v}
}

// Create validates in and stores it as a booking owned by userID. An empty
// status is stored as pending.
func (s *BookingService) Create(ctx context.Context, userID int64, in BookingInput) (*models.Booking, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.BookingPending
	}
	return s.repo.CreateBooking(ctx, models.Booking{
		UserID:      userID,
		Destination: in.Destination,
		StartDate:   in.StartDate.Time,
		EndDate:     in.EndDate.Time,
		GroupSize:   *in.GroupSize,
		AddOns:      in.AddOns,
		TotalCost:   *in.TotalCost,
		Status:      status,
	})
}

// Get returns the booking with the given id, or nil if it does not exist.
func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

// ListByUser returns the bookings owned by userID.
func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.repo.GetBookingsByUserID(ctx, userID)
}
