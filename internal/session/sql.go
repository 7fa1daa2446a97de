package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusfound/campusfound/internal/model"
)

// SQLStore keeps sessions in a table of the application database.
type SQLStore struct {
	DB *sql.DB
}

// NewSQLStore creates a database-backed session store.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// Create inserts a new session record for userID.
func (s *SQLStore) Create(ctx context.Context, userID int64) (*model.Session, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}

	now := time.Now().UTC()
	expires := now.Add(TTL)
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		id, userID, now, expires,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &model.Session{ID: id, UserID: userID, CreatedAt: now, ExpiresAt: expires}, nil
}

// Get returns a live session by ID, or ErrNotFound if absent or expired.
// Expired rows are cleaned up opportunistically.
func (s *SQLStore) Get(ctx context.Context, id string) (*model.Session, error) {
	sess := &model.Session{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		_, _ = s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session record. Deleting a missing session is not an error.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
