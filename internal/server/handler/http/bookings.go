package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/service"
	"go.uber.org/zap"
)

// BookingService defines the booking operations required by BookingHandler.
type BookingService interface {
	Create(ctx context.Context, userID int64, in service.BookingInput) (*models.Booking, error)
	Get(ctx context.Context, id int64) (*models.Booking, error)
}

// BookingHandler serves /api/bookings.
type BookingHandler struct {
	BookingService BookingService
	// DefaultUserID owns bookings created without a session.
	DefaultUserID int64
	Logger        *zap.Logger
}

// Create handles POST /api/bookings and answers 201 {"booking": ...}.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.BookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, h.Logger, err, "Invalid booking data", "Failed to create booking")
		return
	}

	booking, err := h.BookingService.Create(r.Context(), ownerID(r, h.DefaultUserID), in)
	if err != nil {
		writeFailure(w, h.Logger, err, "Invalid booking data", "Failed to create booking")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

// Get handles GET /api/bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}

	booking, err := h.BookingService.Get(r.Context(), id)
	if err != nil {
		h.Logger.Error("failed to get booking", zap.Int64("id", id), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get booking")
		return
	}
	if booking == nil {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}
