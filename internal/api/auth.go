package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusfound/campusfound/internal/auth"
	"github.com/campusfound/campusfound/internal/session"
	"github.com/campusfound/campusfound/internal/store"
)

// AuthHandler serves login for API clients.
type AuthHandler struct {
	DB       *sql.DB
	Secret   string
	Sessions session.Store
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := store.VerifyCredentials(r.Context(), h.DB, req.Email, req.Password)
	if errors.Is(err, store.ErrAuthFailed) {
		jsonError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to verify credentials", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess, err := h.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(h.Secret, sess.ID)
	if err != nil {
		slog.Error("failed to sign session token", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if sessionID, err := auth.ValidateToken(h.Secret, trimBearer(header)); err == nil {
		if err := h.Sessions.Delete(r.Context(), sessionID); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}
	jsonResponse(w, http.StatusNoContent, nil)
}

func trimBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
