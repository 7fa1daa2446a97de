package store

import (
	"context"
	"testing"

	"github.com/campusfound/campusfound/internal/db"
)

func TestAddUniversityIfAbsent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := AddUniversityIfAbsent(ctx, database, "MIT"); err != nil {
		t.Fatalf("AddUniversityIfAbsent: %v", err)
	}
	// Case-insensitive duplicate must be a no-op.
	if err := AddUniversityIfAbsent(ctx, database, "mit"); err != nil {
		t.Fatalf("AddUniversityIfAbsent: %v", err)
	}

	universities, err := ListUniversities(ctx, database)
	if err != nil {
		t.Fatalf("ListUniversities: %v", err)
	}
	if len(universities) != 1 {
		t.Fatalf("expected 1 university, got %d: %v", len(universities), universities)
	}
	if universities[0].Name != "MIT" {
		t.Errorf("expected original casing 'MIT', got %q", universities[0].Name)
	}
}

func TestAddUniversityEmptyName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddUniversityIfAbsent(ctx, database, "")
	AddUniversityIfAbsent(ctx, database, "   ")

	universities, _ := ListUniversities(ctx, database)
	if len(universities) != 0 {
		t.Errorf("expected 0 universities, got %v", universities)
	}
}

func TestListUniversitiesOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddUniversityIfAbsent(ctx, database, "Stanford")
	AddUniversityIfAbsent(ctx, database, "aalto")
	AddUniversityIfAbsent(ctx, database, "MIT")

	universities, err := ListUniversities(ctx, database)
	if err != nil {
		t.Fatalf("ListUniversities: %v", err)
	}

	want := []string{"aalto", "MIT", "Stanford"}
	if len(universities) != len(want) {
		t.Fatalf("expected %d universities, got %d", len(want), len(universities))
	}
	for i := range want {
		if universities[i].Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], universities[i].Name)
		}
	}
}
