// Package session keeps track of authenticated browser sessions. Two stores
// are provided: a process-memory one and one backed by the PostgreSQL pool the
// rest of the application uses.
package session

import (
	"context"
	"time"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/google/uuid"
)

// Store persists sessions keyed by their opaque id.
type Store interface {
	// Create opens a session for userID that expires after ttl.
	Create(ctx context.Context, userID int64, ttl time.Duration) (*models.Session, error)
	// Get returns the live session with the given id, or nil if it is
	// unknown or expired.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// Prune removes every expired session and reports how many were dropped.
	Prune(ctx context.Context) (int64, error)
}

func newID() string {
	return uuid.NewString()
}
