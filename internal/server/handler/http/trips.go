package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/service"
	"go.uber.org/zap"
)

// TripService defines the trip operations required by TripHandler.
type TripService interface {
	Create(ctx context.Context, userID int64, in service.TripInput) (*models.Trip, error)
	Get(ctx context.Context, id int64) (*models.Trip, error)
}

// TripHandler serves /api/trips.
type TripHandler struct {
	TripService TripService
	// DefaultUserID owns trips created without a session.
	DefaultUserID int64
	Logger        *zap.Logger
}

// Create handles POST /api/trips and answers 201 {"trip": ...}.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.TripInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, h.Logger, err, "Invalid trip data", "Failed to create trip")
		return
	}

	trip, err := h.TripService.Create(r.Context(), ownerID(r, h.DefaultUserID), in)
	if err != nil {
		writeFailure(w, h.Logger, err, "Invalid trip data", "Failed to create trip")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"trip": trip})
}

// Get handles GET /api/trips/{id}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Trip not found")
		return
	}

	trip, err := h.TripService.Get(r.Context(), id)
	if err != nil {
		h.Logger.Error("failed to get trip", zap.Int64("id", id), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get trip")
		return
	}
	if trip == nil {
		writeMessage(w, http.StatusNotFound, "Trip not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trip": trip})
}
