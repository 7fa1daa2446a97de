package web

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusfound/campusfound/internal/auth"
	"github.com/campusfound/campusfound/internal/model"
	"github.com/campusfound/campusfound/internal/session"
	"github.com/campusfound/campusfound/internal/store"
)

type webContextKey string

const identityKey webContextKey = "identity"

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

// SessionAuthMiddleware validates the signed token from the cookie, loads
// the session record from the shared store, and adds the user's identity to
// the request context. Requests without a live session are redirected to
// the login page with a reason code.
func SessionAuthMiddleware(secret string, sessions session.Store, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login?reason=auth", http.StatusSeeOther)
				return
			}

			sessionID, err := auth.ValidateToken(secret, cookie.Value)
			if err != nil {
				clearSessionCookie(w)
				http.Redirect(w, r, "/login?reason=auth", http.StatusSeeOther)
				return
			}

			sess, err := sessions.Get(r.Context(), sessionID)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					slog.Error("failed to load session", "error", err)
				}
				clearSessionCookie(w)
				http.Redirect(w, r, "/login?reason=expired", http.StatusSeeOther)
				return
			}

			user, err := store.GetUser(r.Context(), db, sess.UserID)
			if err != nil || user == nil {
				if err != nil {
					slog.Error("failed to load session user", "error", err)
				}
				clearSessionCookie(w)
				http.Redirect(w, r, "/login?reason=auth", http.StatusSeeOther)
				return
			}

			identity := user.Identity()
			ctx := context.WithValue(r.Context(), identityKey, &identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setSessionCookie installs the signed session token with consistent attributes.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetIdentity retrieves the authenticated identity from request context.
func GetIdentity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityKey).(*model.Identity)
	return identity
}
