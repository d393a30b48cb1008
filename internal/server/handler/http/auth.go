package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/travelguide/internal/middleware"
	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/service"
	"go.uber.org/zap"
)

// AccountService defines the account operations required by AuthHandler.
type AccountService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, *models.Session, error)
	Login(ctx context.Context, username, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, sid string) error
	Get(ctx context.Context, id int64) (*models.User, error)
}

// TripLister lists the trips of one user.
type TripLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Trip, error)
}

// BookingLister lists the bookings of one user.
type BookingLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Booking, error)
}

// AuthHandler handles registration, login and the account dashboard.
type AuthHandler struct {
	AccountService AccountService
	TripService    TripLister
	BookingService BookingLister
	// SecureCookies marks the session cookie Secure; set when serving HTTPS.
	SecureCookies bool
	Logger        *zap.Logger
}

// LoginRequest represents the JSON payload for password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register. On success the new user is logged in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, h.Logger, err, "Invalid user data", "Failed to register")
		return
	}

	user, sess, err := h.AccountService.Register(r.Context(), in)
	if errors.Is(err, service.ErrUserExists) {
		writeMessage(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		writeFailure(w, h.Logger, err, "Invalid user data", "Failed to register")
		return
	}

	h.setSessionCookie(w, sess)
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, sess, err := h.AccountService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.Logger.Error("failed to log in", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout handles POST /api/logout. It succeeds without a session too.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.AccountService.Logout(r.Context(), cookie.Value); err != nil {
			h.Logger.Error("failed to log out", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// User handles GET /api/user.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	user, err := h.AccountService.Get(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("failed to get user", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Trips handles GET /api/user/trips.
func (h *AuthHandler) Trips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.TripService.ListByUser(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("failed to list trips", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get trips")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

// Bookings handles GET /api/user/bookings.
func (h *AuthHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListByUser(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get bookings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sess *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
