package web

import (
	"database/sql"
	"net/http"

	"github.com/campusfound/campusfound/internal/imagehost"
	"github.com/campusfound/campusfound/internal/session"
	webembed "github.com/campusfound/campusfound/web"
)

// NewRouter creates the web page router with all page routes registered.
// uploadsDir, when non-empty, is served under /uploads/ for the local
// photo-hosting mode.
func NewRouter(db *sql.DB, secret string, sessions session.Store, uploader imagehost.Uploader, uploadsDir string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Secret:    secret,
		Sessions:  sessions,
		Uploader:  uploader,
	}

	mux := http.NewServeMux()
	sessionAuth := SessionAuthMiddleware(secret, sessions, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	if uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	// Public routes.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("POST /add-university", sessionAuth(http.HandlerFunc(s.AddUniversitySubmit)))

	mux.Handle("GET /items", sessionAuth(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("GET /item/{id}", sessionAuth(http.HandlerFunc(s.ItemDetailPage)))
	mux.Handle("GET /report", sessionAuth(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /report", sessionAuth(http.HandlerFunc(s.ReportSubmit)))
	mux.Handle("GET /my-posts", sessionAuth(http.HandlerFunc(s.MyPostsPage)))
	mux.Handle("GET /items/{id}/edit", sessionAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}/update", sessionAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /items/{id}/delete", sessionAuth(http.HandlerFunc(s.ItemDeleteSubmit)))

	return mux, nil
}
