package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusfound/campusfound/internal/store"
)

// ItemsHandler serves read access to items for API clients.
type ItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/items?university=&status=&search=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	university := r.URL.Query().Get("university")
	if university == "" {
		jsonError(w, http.StatusBadRequest, "university parameter is required")
		return
	}

	items, err := store.ListItemsByUniversity(r.Context(), h.DB, university,
		r.URL.Query().Get("status"), r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}
