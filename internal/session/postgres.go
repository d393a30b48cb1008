package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/travelguide/internal/models"
)

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	// DB is the shared connection pool.
	DB *sql.DB

	now func() time.Time
}

// NewPostgresStore creates a PostgresStore on top of db.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, now: time.Now}
}

// Create implements Store.
func (s *PostgresStore) Create(ctx context.Context, userID int64, ttl time.Duration) (*models.Session, error) {
	sess := models.Session{
		ID:        newID(),
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO sessions (sid, user_id, expires_at) VALUES ($1, $2, $3)`,
		sess.ID, sess.UserID, sess.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.DB.QueryRowContext(ctx,
		`SELECT sid, user_id, expires_at FROM sessions WHERE sid = $1 AND expires_at > $2`,
		id, s.now().UTC(),
	).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune implements Store.
func (s *PostgresStore) Prune(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
