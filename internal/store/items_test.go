package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/campusfound/campusfound/internal/db"
	"github.com/campusfound/campusfound/internal/model"
)

func testUser(t *testing.T, database *sql.DB, email string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, "Test "+email, email, "password")
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func testFields(name, status, university string) model.ItemFields {
	return model.ItemFields{
		Name:         name,
		Description:  "a description",
		Status:       status,
		Category:     "misc",
		University:   university,
		ImageURL:     "https://img.example/" + name + ".jpg",
		ContactEmail: "owner@x.edu",
		ContactPhone: "555-0100",
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "ann@x.edu")

	item, err := CreateItem(ctx, database, testFields("Blue Bottle", model.ItemStatusLost, "MIT"), owner.ID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Blue Bottle" {
		t.Errorf("expected name 'Blue Bottle', got %q", item.Name)
	}
	if item.ReportedBy != owner.ID {
		t.Errorf("expected reported_by %d, got %d", owner.ID, item.ReportedBy)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Error("expected server-set timestamps")
	}

	if _, err := GetItem(ctx, database, item.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestListItemsByUniversity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := testUser(t, database, "ann@x.edu")

	CreateItem(ctx, database, testFields("Blue Bottle", model.ItemStatusLost, "MIT"), owner.ID)
	CreateItem(ctx, database, testFields("Red Scarf", model.ItemStatusFound, "MIT"), owner.ID)
	CreateItem(ctx, database, testFields("Blue Umbrella", model.ItemStatusLost, "Stanford"), owner.ID)

	// Exact university match only.
	mit, err := ListItemsByUniversity(ctx, database, "MIT", "", "")
	if err != nil {
		t.Fatalf("ListItemsByUniversity: %v", err)
	}
	if len(mit) != 2 {
		t.Fatalf("expected 2 MIT items, got %d", len(mit))
	}
	for _, item := range mit {
		if item.University != "MIT" {
			t.Errorf("item %q has university %q", item.Name, item.University)
		}
	}

	// Newest-first.
	if mit[0].Name != "Red Scarf" || mit[1].Name != "Blue Bottle" {
		t.Errorf("expected newest-first order, got %q then %q", mit[0].Name, mit[1].Name)
	}

	// Status filter.
	lost, _ := ListItemsByUniversity(ctx, database, "MIT", model.ItemStatusLost, "")
	if len(lost) != 1 || lost[0].Name != "Blue Bottle" {
		t.Errorf("expected only 'Blue Bottle' for lost filter, got %v", lost)
	}

	// Case-insensitive substring search on name.
	blue, _ := ListItemsByUniversity(ctx, database, "MIT", model.ItemStatusLost, "blue")
	if len(blue) != 1 || blue[0].Name != "Blue Bottle" {
		t.Errorf("expected 'Blue Bottle' for search 'blue', got %v", blue)
	}

	none, _ := ListItemsByUniversity(ctx, database, "MIT", "", "umbrella")
	if len(none) != 0 {
		t.Errorf("expected no MIT items named umbrella, got %v", none)
	}
}

func TestListItemsByOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ann := testUser(t, database, "ann@x.edu")
	bob := testUser(t, database, "bob@x.edu")

	CreateItem(ctx, database, testFields("First", model.ItemStatusLost, "MIT"), ann.ID)
	CreateItem(ctx, database, testFields("Second", model.ItemStatusFound, "MIT"), ann.ID)
	CreateItem(ctx, database, testFields("Other", model.ItemStatusLost, "MIT"), bob.ID)

	items, err := ListItemsByOwner(ctx, database, ann.ID)
	if err != nil {
		t.Fatalf("ListItemsByOwner: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for owner, got %d", len(items))
	}
	if items[0].Name != "Second" || items[1].Name != "First" {
		t.Errorf("expected newest-first order, got %q then %q", items[0].Name, items[1].Name)
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ann := testUser(t, database, "ann@x.edu")
	bob := testUser(t, database, "bob@x.edu")

	item, _ := CreateItem(ctx, database, testFields("Blue Bottle", model.ItemStatusLost, "MIT"), ann.ID)

	changed := testFields("Renamed", model.ItemStatusFound, "MIT")
	err := UpdateItem(ctx, database, item.ID, changed, bob.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Record must be unchanged after the forbidden attempt.
	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Blue Bottle" || got.Status != model.ItemStatusLost {
		t.Errorf("record changed by non-owner: %+v", got)
	}

	if err := UpdateItem(ctx, database, item.ID, changed, ann.ID); err != nil {
		t.Fatalf("UpdateItem by owner: %v", err)
	}
	got, _ = GetItem(ctx, database, item.ID)
	if got.Name != "Renamed" || got.Status != model.ItemStatusFound {
		t.Errorf("expected updated fields, got %+v", got)
	}

	if err := UpdateItem(ctx, database, item.ID+100, changed, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestUpdateItemKeepsImageURL(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ann := testUser(t, database, "ann@x.edu")

	item, _ := CreateItem(ctx, database, testFields("Blue Bottle", model.ItemStatusLost, "MIT"), ann.ID)

	// Empty ImageURL keeps the stored one.
	fields := testFields("Blue Bottle", model.ItemStatusLost, "MIT")
	fields.ImageURL = ""
	UpdateItem(ctx, database, item.ID, fields, ann.ID)

	got, _ := GetItem(ctx, database, item.ID)
	if got.ImageURL != item.ImageURL {
		t.Errorf("expected image URL kept, got %q", got.ImageURL)
	}

	// A new ImageURL replaces it.
	fields.ImageURL = "https://img.example/new.jpg"
	UpdateItem(ctx, database, item.ID, fields, ann.ID)

	got, _ = GetItem(ctx, database, item.ID)
	if got.ImageURL != "https://img.example/new.jpg" {
		t.Errorf("expected replaced image URL, got %q", got.ImageURL)
	}
}

func TestDeleteItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ann := testUser(t, database, "ann@x.edu")
	bob := testUser(t, database, "bob@x.edu")

	item, _ := CreateItem(ctx, database, testFields("Blue Bottle", model.ItemStatusLost, "MIT"), ann.ID)

	if err := DeleteItem(ctx, database, item.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := GetItem(ctx, database, item.ID); err != nil {
		t.Fatalf("item should still exist after forbidden delete: %v", err)
	}

	if err := DeleteItem(ctx, database, item.ID, ann.ID); err != nil {
		t.Fatalf("DeleteItem by owner: %v", err)
	}
	if _, err := GetItem(ctx, database, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := DeleteItem(ctx, database, item.ID, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}
