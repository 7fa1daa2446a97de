package model

import "time"

// Item is a single lost-or-found report tied to one university and one
// reporting user. The university field is a copy of a registry name, not
// a foreign key.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Category     string    `json:"category"`
	University   string    `json:"university"`
	ImageURL     string    `json:"image_url"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	ReportedBy   int64     `json:"reported_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item statuses.
const (
	ItemStatusLost  = "lost"
	ItemStatusFound = "found"
)

// ValidStatus reports whether s is a recognized item status.
func ValidStatus(s string) bool {
	return s == ItemStatusLost || s == ItemStatusFound
}

// ItemFields holds the mutable fields of an item, parsed from a report or
// edit form. ImageURL may be empty on update, meaning the stored URL is kept.
type ItemFields struct {
	Name         string
	Description  string
	Status       string
	Category     string
	University   string
	ImageURL     string
	ContactEmail string
	ContactPhone string
}
