// Package session persists authenticated sessions outside server memory so
// a restart does not log everyone out. Records are keyed by a random ID
// that travels in a signed cookie token.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/campusfound/campusfound/internal/model"
)

// TTL is the server-side session record lifetime. The cookie token expires
// sooner (see auth.TokenExpiry), so the cookie governs in practice.
const TTL = 14 * 24 * time.Hour

// ErrNotFound is returned when a session is absent or expired.
var ErrNotFound = errors.New("session not found or expired")

// Store is a shared session store.
type Store interface {
	Create(ctx context.Context, userID int64) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

// newID creates a random session ID.
func newID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
