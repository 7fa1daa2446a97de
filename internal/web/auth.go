package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campusfound/campusfound/internal/auth"
	"github.com/campusfound/campusfound/internal/store"
)

// loginReasons maps redirect reason codes to user-visible messages.
var loginReasons = map[string]string{
	"auth":    "Please log in to continue.",
	"expired": "Your session has expired, please log in again.",
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &PageData{Title: "Sign up"})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if name == "" || email == "" || password == "" {
		s.Templates.Render(w, "signup.html", &PageData{
			Title: "Sign up",
			Error: "Name, email and password are required.",
		})
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, name, email, password)
	if errors.Is(err, store.ErrDuplicateEmail) {
		s.Templates.Render(w, "signup.html", &PageData{
			Title: "Sign up",
			Error: "An account with that email already exists.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		s.Templates.Render(w, "signup.html", &PageData{
			Title: "Sign up",
			Error: "Something went wrong, please try again.",
		})
		return
	}

	slog.Info("user signed up", "email", user.Email)
	s.establishSession(w, r, user.ID)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{
		Title: "Log in",
		Error: loginReasons[r.URL.Query().Get("reason")],
	})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter your email and password.",
		})
		return
	}

	user, err := store.VerifyCredentials(r.Context(), s.DB, email, password)
	if errors.Is(err, store.ErrAuthFailed) {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid email or password.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to verify credentials", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Something went wrong, please try again.",
		})
		return
	}

	s.establishSession(w, r, user.ID)
}

// Logout handles GET /logout. Destroys the session record and redirects home.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if sessionID, err := auth.ValidateToken(s.Secret, cookie.Value); err == nil {
			if err := s.Sessions.Delete(r.Context(), sessionID); err != nil {
				slog.Error("failed to delete session", "error", err)
			}
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession creates a session record, sets the signed cookie, and
// redirects to the landing page.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, userID int64) {
	sess, err := s.Sessions.Create(r.Context(), userID)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(s.Secret, sess.ID)
	if err != nil {
		slog.Error("failed to sign session token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
