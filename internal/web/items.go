package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/campusfound/campusfound/internal/imagehost"
	"github.com/campusfound/campusfound/internal/imaging"
	"github.com/campusfound/campusfound/internal/model"
	"github.com/campusfound/campusfound/internal/store"
)

// maxUploadSize caps report photo uploads.
const maxUploadSize = 5 << 20

// ItemsPage handles GET /items?university=&status=&search=. A missing
// university parameter sends the user back to the landing selector.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())

	university := r.URL.Query().Get("university")
	if university == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	items, err := store.ListItemsByUniversity(r.Context(), s.DB, university, status, search)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items      []model.Item
		University string
		Status     string
		Search     string
	}{
		PageData:   PageData{Title: university, User: identity},
		Items:      items,
		University: university,
		Status:     status,
		Search:     search,
	})
}

// ItemDetailPage handles GET /item/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item    *model.Item
		IsOwner bool
	}{
		PageData: PageData{Title: item.Name, User: identity},
		Item:     item,
		IsOwner:  item.ReportedBy == identity.ID,
	})
}

// ReportPage handles GET /report.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	s.renderReportForm(w, r, "")
}

// ReportSubmit handles POST /report. Accepts a multipart form with the item
// fields and a photo, uploads the photo to the hosting collaborator, and
// creates the item.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.renderReportForm(w, r, "Photo too large (5 MB max).")
		return
	}

	fields, errMsg := parseItemForm(r)
	if errMsg != "" {
		s.renderReportForm(w, r, errMsg)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.renderReportForm(w, r, "A photo of the item is required.")
		return
	}
	defer file.Close()

	data, err := imaging.Process(file)
	if err != nil {
		s.renderReportForm(w, r, err.Error())
		return
	}

	imageURL, err := s.Uploader.Upload(r.Context(), data, imaging.MIME)
	if err != nil {
		if errors.Is(err, imagehost.ErrUpload) {
			slog.Warn("photo host rejected upload", "error", err)
		} else {
			slog.Error("failed to upload photo", "error", err)
		}
		s.renderReportForm(w, r, "Uploading the photo failed, please try again.")
		return
	}
	fields.ImageURL = imageURL

	item, err := store.CreateItem(r.Context(), s.DB, fields, identity.ID)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		s.renderReportForm(w, r, "Something went wrong, please try again.")
		return
	}

	slog.Info("item reported", "user", identity.Email, "item", item.Name, "status", item.Status)
	http.Redirect(w, r, "/items?university="+url.QueryEscape(item.University), http.StatusSeeOther)
}

// MyPostsPage handles GET /my-posts.
func (s *Server) MyPostsPage(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())

	items, err := store.ListItemsByOwner(r.Context(), s.DB, identity.ID)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
	}

	s.Templates.Render(w, "my_posts.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My posts", User: identity},
		Items:    items,
	})
}

// ItemEditPage handles GET /items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item.ReportedBy != identity.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	universities, err := store.ListUniversities(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list universities", "error", err)
	}

	s.Templates.Render(w, "item_edit.html", &struct {
		PageData
		Item         *model.Item
		Universities []model.University
	}{
		PageData:     PageData{Title: "Edit " + item.Name, User: identity},
		Item:         item,
		Universities: universities,
	})
}

// ItemUpdateSubmit handles POST /items/{id}/update. The photo is optional;
// when omitted the stored image URL is kept.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "photo too large", http.StatusBadRequest)
		return
	}

	fields, errMsg := parseItemForm(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		data, err := imaging.Process(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		imageURL, err := s.Uploader.Upload(r.Context(), data, imaging.MIME)
		if err != nil {
			slog.Error("failed to upload photo", "error", err)
			http.Error(w, "photo upload failed", http.StatusBadGateway)
			return
		}
		fields.ImageURL = imageURL
	}

	err = store.UpdateItem(r.Context(), s.DB, id, fields, identity.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "user", identity.Email, "item", fields.Name)
	http.Redirect(w, r, "/item/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = store.DeleteItem(r.Context(), s.DB, id, identity.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item deleted", "user", identity.Email, "item", id)
	http.Redirect(w, r, "/my-posts", http.StatusSeeOther)
}

// parseItemForm reads and validates the item fields shared by the report
// and edit forms. Returns a user-visible message when validation fails.
func parseItemForm(r *http.Request) (model.ItemFields, string) {
	fields := model.ItemFields{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Status:       r.FormValue("status"),
		Category:     strings.TrimSpace(r.FormValue("category")),
		University:   strings.TrimSpace(r.FormValue("university")),
		ContactEmail: strings.TrimSpace(r.FormValue("contactEmail")),
		ContactPhone: strings.TrimSpace(r.FormValue("contactPhone")),
	}

	switch {
	case fields.Name == "" || fields.Description == "" || fields.Category == "" || fields.University == "":
		return fields, "All item fields are required."
	case !model.ValidStatus(fields.Status):
		return fields, "Status must be either lost or found."
	case fields.ContactEmail == "" && fields.ContactPhone == "":
		return fields, "Provide at least one way to contact you."
	}
	return fields, ""
}

// renderReportForm shows the report form, with universities for the selector.
func (s *Server) renderReportForm(w http.ResponseWriter, r *http.Request, errMsg string) {
	identity := GetIdentity(r.Context())
	universities, err := store.ListUniversities(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list universities", "error", err)
	}

	s.Templates.Render(w, "report.html", &struct {
		PageData
		Universities []model.University
	}{
		PageData:     PageData{Title: "Report an item", User: identity, Error: errMsg},
		Universities: universities,
	})
}
