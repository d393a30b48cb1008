// Package http provides HTTP routing, middleware configuration and JSON
// handlers for the travel guide API.
package http

import (
	"net/http"

	"github.com/atinyakov/travelguide/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth         *AuthHandler
	Trips        *TripHandler
	Bookings     *BookingHandler
	Contact      *ContactHandler
	Destinations *DestinationHandler
	Health       *HealthHandler
}

// NewRouter constructs and returns an HTTP handler that serves the travel
// guide API.
//
// Routes:
//
//	GET  /api/destinations     → Destinations.List
//	POST /api/trips            → Trips.Create
//	GET  /api/trips/{id}       → Trips.Get
//	POST /api/bookings         → Bookings.Create
//	GET  /api/bookings/{id}    → Bookings.Get
//	POST /api/contact          → Contact.Send
//	POST /api/register         → Auth.Register
//	POST /api/login            → Auth.Login
//	POST /api/logout           → Auth.Logout
//	GET  /api/user             → Auth.User (session required)
//	GET  /api/user/trips       → Auth.Trips (session required)
//	GET  /api/user/bookings    → Auth.Bookings (session required)
//	GET  /health               → Health.Check
//	GET  /metrics              → Prometheus exposition
//
// Middleware chain (applied in order):
//  1. metrics.Instrument                   counts and times requests
//  2. WithRequestLogging(logger)           logs incoming requests
//  3. Recoverer                            turns panics into 500s
//  4. AllowContentType("application/json") rejects non-JSON bodies
//  5. WithSession(auth, logger)            loads the session user, if any
func NewRouter(
	h Handlers,
	auth middleware.Authenticator,
	metrics *middleware.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Instrument)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	// Bodyless requests pass; anything with a body must be JSON.
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithSession(auth, logger))

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/destinations", h.Destinations.List)

		r.Post("/trips", h.Trips.Create)
		r.Get("/trips/{id}", h.Trips.Get)

		r.Post("/bookings", h.Bookings.Create)
		r.Get("/bookings/{id}", h.Bookings.Get)

		r.Post("/contact", h.Contact.Send)

		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		// Protected group: requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/user", h.Auth.User)
			r.Get("/user/trips", h.Auth.Trips)
			r.Get("/user/bookings", h.Auth.Bookings)
		})
	})

	return r
}
