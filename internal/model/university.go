package model

import "time"

// University is an institution name items can be scoped to. Names are
// unique case-insensitively but stored with their original casing.
type University struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
