package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/atinyakov/travelguide/internal/middleware"
	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/validation"
	"go.uber.org/zap"
)

// errorResponse is the body of every failed request. Errors is only set for
// validation failures.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// decodeJSON reads the request body into dst. A malformed body is reported
// as a single validation error so clients see the same shape as for a
// schema violation.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fe := validation.FieldError{Code: "invalid_json", Message: "malformed request body"}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			fe = validation.FieldError{
				Field:   typeErr.Field,
				Code:    "type",
				Message: "must be of type " + typeErr.Type.String(),
			}
			if typeErr.Type == reflect.TypeOf(models.Date{}) {
				fe.Code = "date"
				fe.Message = "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
			}
		}
		return validation.Errors{fe}
	}
	return nil
}

// writeFailure maps err to a 400 carrying field errors when it is a
// validation failure, and to a logged 500 with a generic message otherwise.
func writeFailure(w http.ResponseWriter, logger *zap.Logger, err error, invalidMsg, failedMsg string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: invalidMsg, Errors: verrs})
		return
	}
	logger.Error(failedMsg, zap.Error(err))
	writeMessage(w, http.StatusInternalServerError, failedMsg)
}

// ownerID returns the authenticated user, or fallback for anonymous requests.
func ownerID(r *http.Request, fallback int64) int64 {
	if id := middleware.GetUserIDFromContext(r.Context()); id != 0 {
		return id
	}
	return fallback
}
