package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/session"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for duplicate keys.
const uniqueViolation = "23505"

const (
	userColumns    = `id, username, password, email, full_name, preferred_language, profile_image, created_at`
	tripColumns    = `id, user_id, name, destinations, duration, travel_style, budget, start_date, end_date, itinerary, created_at`
	bookingColumns = `id, user_id, destination, start_date, end_date, group_size, add_ons, total_cost, status, created_at`
	messageColumns = `id, name, email, message, created_at`
)

// PostgresStorage implements Storage on top of a PostgreSQL database.
type PostgresStorage struct {
	// DB is the sqlx handle wrapping the shared pool.
	DB *sqlx.DB

	sessions *session.PostgresStore
}

var _ Storage = (*PostgresStorage)(nil)

// NewPostgresStorage creates a PostgresStorage using db for entities and
// sessions alike. db must point at a database initialised by db.InitPostgres.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{
		DB:       sqlx.NewDb(db, "postgres"),
		sessions: session.NewPostgresStore(db),
	}
}

// Sessions implements Storage.
func (s *PostgresStorage) Sessions() session.Store {
	return s.sessions
}

// Ping implements Storage.
func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

type userRow struct {
	ID                int64     `db:"id"`
	Username          string    `db:"username"`
	Password          string    `db:"password"`
	Email             string    `db:"email"`
	FullName          *string   `db:"full_name"`
	PreferredLanguage string    `db:"preferred_language"`
	ProfileImage      *string   `db:"profile_image"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r userRow) model() *models.User {
	return &models.User{
		ID:                r.ID,
		Username:          r.Username,
		Password:          r.Password,
		Email:             r.Email,
		FullName:          r.FullName,
		PreferredLanguage: r.PreferredLanguage,
		ProfileImage:      r.ProfileImage,
		CreatedAt:         r.CreatedAt,
	}
}

type tripRow struct {
	ID           int64             `db:"id"`
	UserID       int64             `db:"user_id"`
	Name         string            `db:"name"`
	Destinations pq.StringArray    `db:"destinations"`
	Duration     string            `db:"duration"`
	TravelStyle  string            `db:"travel_style"`
	Budget       string            `db:"budget"`
	StartDate    *time.Time        `db:"start_date"`
	EndDate      *time.Time        `db:"end_date"`
	Itinerary    *models.Itinerary `db:"itinerary"`
	CreatedAt    time.Time         `db:"created_at"`
}

func (r tripRow) model() models.Trip {
	return models.Trip{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Destinations: []string(r.Destinations),
		Duration:     r.Duration,
		TravelStyle:  r.TravelStyle,
		Budget:       r.Budget,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Itinerary:    r.Itinerary,
		CreatedAt:    r.CreatedAt,
	}
}

type bookingRow struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Destination string         `db:"destination"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	GroupSize   int            `db:"group_size"`
	AddOns      pq.StringArray `db:"add_ons"`
	TotalCost   int            `db:"total_cost"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r bookingRow) model() models.Booking {
	return models.Booking{
		ID:          r.ID,
		UserID:      r.UserID,
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		GroupSize:   r.GroupSize,
		AddOns:      []string(r.AddOns),
		TotalCost:   r.TotalCost,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

type messageRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// GetUser returns the user with the given id, or nil if there is none.
func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.model(), nil
}

// GetUserByUsername looks a user up by exact, case-sensitive username.
func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return row.model(), nil
}

// CreateUser inserts a user. A duplicate username yields ErrUsernameTaken.
func (s *PostgresStorage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = models.DefaultLanguage
	}
	var row userRow
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (username, password, email, full_name, preferred_language, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.Username, user.Password, user.Email, user.FullName, user.PreferredLanguage, user.ProfileImage,
	).StructScan(&row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("create user %q: %w", user.Username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return row.model(), nil
}

// GetTrip returns the trip with the given id, or nil if there is none.
func (s *PostgresStorage) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	var row tripRow
	err := s.DB.GetContext(ctx, &row, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	trip := row.model()
	return &trip, nil
}

// GetTripsByUserID lists the trips owned by userID in creation order.
func (s *PostgresStorage) GetTripsByUserID(ctx context.Context, userID int64) ([]models.Trip, error) {
	rows := []tripRow{}
	if err := s.DB.SelectContext(ctx, &rows,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("get trips by user: %w", err)
	}
	trips := make([]models.Trip, 0, len(rows))
	for _, r := range rows {
		trips = append(trips, r.model())
	}
	return trips, nil
}

// CreateTrip inserts a trip and returns it with its id and creation time.
func (s *PostgresStorage) CreateTrip(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	var row tripRow
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO trips (user_id, name, destinations, duration, travel_style, budget, start_date, end_date, itinerary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+tripColumns,
		trip.UserID, trip.Name, pq.Array(trip.Destinations), trip.Duration, trip.TravelStyle,
		trip.Budget, trip.StartDate, trip.EndDate, trip.Itinerary,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	created := row.model()
	return &created, nil
}

// GetBooking returns the booking with the given id, or nil if there is none.
func (s *PostgresStorage) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var row bookingRow
	err := s.DB.GetContext(ctx, &row, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	booking := row.model()
	return &booking, nil
}

// GetBookingsByUserID lists the bookings owned by userID in creation order.
func (s *PostgresStorage) GetBookingsByUserID(ctx context.Context, userID int64) ([]models.Booking, error) {
	rows := []bookingRow{}
	if err := s.DB.SelectContext(ctx, &rows,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("get bookings by user: %w", err)
	}
	bookings := make([]models.Booking, 0, len(rows))
	for _, r := range rows {
		bookings = append(bookings, r.model())
	}
	return bookings, nil
}

// CreateBooking inserts a booking. An empty status falls back to pending.
func (s *PostgresStorage) CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	var row bookingRow
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO bookings (user_id, destination, start_date, end_date, group_size, add_ons, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+bookingColumns,
		booking.UserID, booking.Destination, booking.StartDate, booking.EndDate, booking.GroupSize,
		pq.Array(booking.AddOns), booking.TotalCost, booking.Status,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	created := row.model()
	return &created, nil
}

// CreateContactMessage stores a contact form submission.
func (s *PostgresStorage) CreateContactMessage(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	var row messageRow
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING `+messageColumns,
		msg.Name, msg.Email, msg.Message,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return &models.ContactMessage{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}, nil
}
