package api

import (
	"database/sql"
	"net/http"

	"github.com/campusfound/campusfound/internal/session"
)

// NewRouter creates the JSON API router with all endpoints registered.
func NewRouter(db *sql.DB, secret string, sessions session.Store) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Secret: secret, Sessions: sessions}
	itemsHandler := &ItemsHandler{DB: db}
	universitiesHandler := &UniversitiesHandler{DB: db}

	authMW := AuthMiddleware(secret, sessions, db)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/universities", authMW(http.HandlerFunc(universitiesHandler.List)))
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))

	return mux
}
