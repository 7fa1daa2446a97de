package store

import (
	"context"
	"errors"
	"testing"

	"github.com/campusfound/campusfound/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Ann", "ann@x.edu", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Name != "Ann" {
		t.Errorf("expected name 'Ann', got %q", user.Name)
	}
	if user.PasswordHash == "pw1" {
		t.Error("password stored in plaintext")
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "ann@x.edu" {
		t.Errorf("expected email 'ann@x.edu', got %q", got.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := CreateUser(ctx, database, "Ann", "ann@x.edu", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err = CreateUser(ctx, database, "Impostor", "ann@x.edu", "pw2")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The existing record must be untouched.
	got, _ := GetUserByEmail(ctx, database, "ann@x.edu")
	if got.ID != first.ID || got.Name != "Ann" {
		t.Errorf("existing record changed: %+v", got)
	}
}

func TestVerifyCredentials(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created, _ := CreateUser(ctx, database, "Ann", "ann@x.edu", "pw1")

	user, err := VerifyCredentials(ctx, database, "ann@x.edu", "pw1")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("expected user id %d, got %d", created.ID, user.ID)
	}

	if _, err := VerifyCredentials(ctx, database, "ann@x.edu", "wrong"); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("expected ErrAuthFailed for wrong password, got %v", err)
	}

	if _, err := VerifyCredentials(ctx, database, "nobody@x.edu", "pw1"); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("expected ErrAuthFailed for unknown email, got %v", err)
	}
}
