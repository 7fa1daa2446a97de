package web

import (
	"log/slog"
	"net/http"

	"github.com/campusfound/campusfound/internal/auth"
	"github.com/campusfound/campusfound/internal/model"
	"github.com/campusfound/campusfound/internal/store"
)

// HomePage handles GET /. Lists universities for the landing selector.
// Public: browsing starts here, authentication kicks in on the item pages.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	universities, err := store.ListUniversities(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list universities", "error", err)
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Universities []model.University
	}{
		PageData:     PageData{Title: "Campus Lost & Found", User: s.optionalIdentity(r)},
		Universities: universities,
	})
}

// AddUniversitySubmit handles POST /add-university. Idempotent add.
func (s *Server) AddUniversitySubmit(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	name := r.FormValue("newUniversity")

	if err := store.AddUniversityIfAbsent(r.Context(), s.DB, name); err != nil {
		slog.Error("failed to add university", "error", err)
	} else if name != "" {
		slog.Info("university added", "user", identity.Email, "university", name)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// optionalIdentity resolves the identity for public pages: present when a
// live session cookie exists, nil otherwise.
func (s *Server) optionalIdentity(r *http.Request) *model.Identity {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sessionID, err := auth.ValidateToken(s.Secret, cookie.Value)
	if err != nil {
		return nil
	}
	sess, err := s.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		return nil
	}
	user, err := store.GetUser(r.Context(), s.DB, sess.UserID)
	if err != nil || user == nil {
		return nil
	}
	identity := user.Identity()
	return &identity
}
