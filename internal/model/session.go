package model

import "time"

// Session is a server-side record of an authenticated identity, referenced
// by a signed token held in a cookie. The record outlives the cookie: the
// cookie expires after a day, the record after two weeks, and the shorter
// of the two governs.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
