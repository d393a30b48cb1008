// Package service provides the business logic of the travel guide API:
// input validation and delegation to the storage layer.
package service

import (
	"context"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/validation"
)

// TripRepository defines the persistence operations required by TripService.
type TripRepository interface {
	// GetTrip returns nil and no error when the trip does not exist.
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	GetTripsByUserID(ctx context.Context, userID int64) ([]models.Trip, error)
	CreateTrip(ctx context.Context, trip models.Trip) (*models.Trip, error)
}

// TripInput is the accepted body of a trip creation request.
type TripInput struct {
	Name         string            `json:"name" validate:"required"`
	Destinations []string          `json:"destinations" validate:"required,min=1,dive,required"`
	Duration     string            `json:"duration" validate:"required,oneof=short medium long"`
	TravelStyle  string            `json:"travelStyle" validate:"required,oneof=solo family luxury budget"`
	Budget       string            `json:"budget" validate:"required,oneof=economy moderate luxury"`
	StartDate    *models.Date      `json:"startDate"`
	EndDate      *models.Date      `json:"endDate"`
	Itinerary    *models.Itinerary `json:"itinerary"`
}

// TripService validates and stores trips.
type TripService struct {
	repo     TripRepository
	validate *validation.Validator
}

// NewTripService constructs a TripService backed by repo.
func NewTripService(repo TripRepository, v *validation.Validator) *TripService {
	return &TripService{repo: repo, validate: v}
}

// Create validates in and stores it as a trip owned by userID.
// A validation failure is returned as validation.Errors and nothing is stored.
func (s *TripService) Create(ctx context.Context, userID int64, in TripInput) (*models.Trip, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return s.repo.CreateTrip(ctx, models.Trip{
		UserID:       userID,
		Name:         in.Name,
		Destinations: in.Destinations,
		Duration:     in.Duration,
		TravelStyle:  in.TravelStyle,
		Budget:       in.Budget,
		StartDate:    in.StartDate.Ptr(),
		EndDate:      in.EndDate.Ptr(),
		Itinerary:    in.Itinerary,
	})
}

// Get returns the trip with the given id, or nil if it does not exist.
func (s *TripService) Get(ctx context.Context, id int64) (*models.Trip, error) {
	return s.repo.GetTrip(ctx, id)
}

// ListByUser returns the trips owned by userID.
func (s *TripService) ListByUser(ctx context.Context, userID int64) ([]models.Trip, error) {
	return s.repo.GetTripsByUserID(ctx, userID)
}
