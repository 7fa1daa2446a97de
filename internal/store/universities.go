package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusfound/campusfound/internal/model"
)

// ListUniversities returns all universities ordered alphabetically by name.
func ListUniversities(ctx context.Context, db *sql.DB) ([]model.University, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM universities ORDER BY name COLLATE NOCASE`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing universities: %w", err)
	}
	defer rows.Close()

	var universities []model.University
	for rows.Next() {
		var u model.University
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning university: %w", err)
		}
		universities = append(universities, u)
	}
	return universities, rows.Err()
}

// AddUniversityIfAbsent creates a university unless one with the same name
// (compared case-insensitively) already exists. The original casing is
// stored. Empty or whitespace-only names are ignored. The read-then-write
// check races with concurrent adds; the NOCASE unique index makes the loser
// a no-op instead of a duplicate.
func AddUniversityIfAbsent(ctx context.Context, db *sql.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM universities WHERE name = ? COLLATE NOCASE`, name,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking university: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO universities (name) VALUES (?)`, name,
	)
	if err != nil {
		return fmt.Errorf("adding university: %w", err)
	}
	return nil
}
