package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/service"
	"go.uber.org/zap"
)

type ContactService interface {
	Send(ctx context.Context, in service.ContactInput) (*models.ContactMessage, error)
}

type ContactHandler struct {
	ContactService ContactService
	Logger         *zap.Logger
}

// Send handles POST /api/contact and answers 201 {"message": ...}.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, h.Logger, err, "Invalid message data", "Failed to send message")
		return
	}

	msg, err := h.ContactService.Send(r.Context(), in)
	if err != nil {
		writeFailure(w, h.Logger, err, "Invalid message data", "Failed to send message")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}
