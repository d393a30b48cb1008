package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/service"
	"github.com/atinyakov/travelguide/internal/validation"
	"go.uber.org/zap"
)

// fakeBookingService implements BookingService for testing.
type fakeBookingService struct {
	createErr error
	booking   *models.Booking
	getErr    error
}

func (f *fakeBookingService) Create(ctx context.Context, userID int64, in service.BookingInput) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Booking{ID: 7, UserID: userID, Destination: in.Destination, Status: models.BookingPending}, nil
}

func (f *fakeBookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return f.booking, f.getErr
}

func TestBookingHandler_Create(t *testing.T) {
	body := `{"destination":"Venice, Italy","startDate":"2024-06-01","endDate":"2024-06-08","groupSize":2,"totalCost":850}`

	tests := []struct {
		name           string
		body           string
		service        *fakeBookingService
		expectedCode   int
		expectedSubstr string
	}{
		{"created", body, &fakeBookingService{}, http.StatusCreated, `"booking":{"id":7`},
		{"wrong type", `{"groupSize":"two"}`, &fakeBookingService{}, http.StatusBadRequest, `"field":"groupSize"`},
		{"bad date", `{"startDate":"next tuesday"}`, &fakeBookingService{}, http.StatusBadRequest, `"errors":[{"field":"startDate","code":"date"`},
		{
			"validation error",
			`{}`,
			&fakeBookingService{createErr: validation.Errors{{Field: "destination", Code: "required", Message: "is required"}}},
			http.StatusBadRequest,
			`"errors":[{"field":"destination"`,
		},
		{"storage error", body, &fakeBookingService{createErr: errors.New("db")}, http.StatusInternalServerError, "Failed to create booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(tt.body))
			h := &BookingHandler{BookingService: tt.service, DefaultUserID: 1, Logger: zap.NewNop()}

			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestBookingHandler_Get(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		service      *fakeBookingService
		expectedCode int
		expectedBody string
	}{
		{"found", "7", &fakeBookingService{booking: &models.Booking{ID: 7, Status: "confirmed"}}, http.StatusOK, `"status":"confirmed"`},
		{"not found", "8", &fakeBookingService{}, http.StatusNotFound, "Booking not found"},
		{"malformed id", "7x", &fakeBookingService{}, http.StatusNotFound, "Booking not found"},
		{"storage error", "9", &fakeBookingService{getErr: errors.New("boom")}, http.StatusInternalServerError, "Failed to get booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/bookings/"+tt.id, nil), "id", tt.id)
			h := &BookingHandler{BookingService: tt.service, Logger: zap.NewNop()}

			h.Get(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
		})
	}
}
