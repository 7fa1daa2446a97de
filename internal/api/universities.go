package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/campusfound/campusfound/internal/model"
	"github.com/campusfound/campusfound/internal/store"
)

// UniversitiesHandler serves the university registry for API clients.
type UniversitiesHandler struct {
	DB *sql.DB
}

// List handles GET /api/universities.
func (h *UniversitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	universities, err := store.ListUniversities(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list universities", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if universities == nil {
		universities = []model.University{}
	}
	jsonResponse(w, http.StatusOK, universities)
}
