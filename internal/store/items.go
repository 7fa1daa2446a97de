package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusfound/campusfound/internal/model"
)

const itemColumns = `id, name, description, status, category, university,
	image_url, contact_email, contact_phone, reported_by, created_at, updated_at`

// CreateItem persists a new item owned by ownerID. Field validation happens
// in the handler before this call; the image URL must already be resolved.
func CreateItem(ctx context.Context, db *sql.DB, fields model.ItemFields, ownerID int64) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, status, category, university,
		     image_url, contact_email, contact_phone, reported_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fields.Name, fields.Description, fields.Status, fields.Category,
		fields.University, fields.ImageURL, fields.ContactEmail,
		fields.ContactPhone, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID. Returns ErrNotFound if absent.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	).Scan(
		&item.ID, &item.Name, &item.Description, &item.Status, &item.Category,
		&item.University, &item.ImageURL, &item.ContactEmail, &item.ContactPhone,
		&item.ReportedBy, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItemsByUniversity returns items whose university matches exactly,
// optionally restricted by exact status and a case-insensitive substring
// match on the name, ordered newest-first.
func ListItemsByUniversity(ctx context.Context, db *sql.DB, university, status, search string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE university = ?`
	args := []any{university}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if search != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		query += ` AND name LIKE '%' || ? || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByOwner returns all items reported by ownerID, newest-first.
func ListItemsByOwner(ctx context.Context, db *sql.DB, ownerID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE reported_by = ?
		 ORDER BY created_at DESC, id DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by owner: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem overwrites the mutable fields of an item. Returns ErrNotFound
// if the item does not exist and ErrForbidden if requesterID is not the
// reporting user. An empty ImageURL keeps the stored image URL.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, fields model.ItemFields, requesterID int64) error {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item.ReportedBy != requesterID {
		return ErrForbidden
	}

	imageURL := fields.ImageURL
	if imageURL == "" {
		imageURL = item.ImageURL
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, status = ?, category = ?,
		     university = ?, image_url = ?, contact_email = ?, contact_phone = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		fields.Name, fields.Description, fields.Status, fields.Category,
		fields.University, imageURL, fields.ContactEmail, fields.ContactPhone, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Same ownership checks as UpdateItem.
func DeleteItem(ctx context.Context, db *sql.DB, id int64, requesterID int64) error {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item.ReportedBy != requesterID {
		return ErrForbidden
	}

	_, err = db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// scanItems reads all rows into a slice of items.
func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Status, &item.Category,
			&item.University, &item.ImageURL, &item.ContactEmail, &item.ContactPhone,
			&item.ReportedBy, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
