package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/middleware"
	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/query"
	"github.com/tutorialhub/backend/internal/services"
)

type TutorialsHandler struct {
	tutorials *services.TutorialService
}

func NewTutorialsHandler(t *services.TutorialService) *TutorialsHandler {
	return &TutorialsHandler{tutorials: t}
}

func listParams(r *http.Request) query.Params {
	q := r.URL.Query()
	p := query.Params{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     query.Sort(q.Get("sort")),
		Status:   q.Get("status"),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		p.PageSize = n
	}
	return p
}

// List handles GET /tutorials: published only, reduced projection.
func (h *TutorialsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, meta, err := h.tutorials.ListPublic(r.Context(), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"tutorials":  emptyIfNil(items),
		"pagination": meta,
	})
}

// GetBySlug handles GET /tutorials/{slug} and bumps the view counter.
func (h *TutorialsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	t, err := h.tutorials.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// Search handles GET /tutorials/search?q=.
func (h *TutorialsHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, meta, err := h.tutorials.Search(r.Context(), r.URL.Query().Get("q"), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"tutorials":  emptyIfNil(items),
		"pagination": meta,
	})
}

// CategoryCounts handles GET /tutorials/meta/categories.
func (h *TutorialsHandler) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.tutorials.CategoryCounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": counts})
}

// Stats handles GET /tutorials/meta/stats.
func (h *TutorialsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tutorials.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// Create handles POST /tutorials (admin).
func (h *TutorialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var t models.Tutorial
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := h.tutorials.Create(r.Context(), t, id.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /tutorials/{id} (admin).
func (h *TutorialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	updated, err := h.tutorials.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /tutorials/{id} (admin). Hard delete.
func (h *TutorialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tutorials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminList handles GET /tutorials/admin/all: drafts included, full records.
func (h *TutorialsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	tuts, meta, err := h.tutorials.AdminList(r.Context(), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tuts == nil {
		tuts = []models.Tutorial{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"tutorials":  tuts,
		"pagination": meta,
	})
}

// AdminGet handles GET /tutorials/admin/{id}.
func (h *TutorialsHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.tutorials.AdminGet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func emptyIfNil(items []models.ListItem) []models.ListItem {
	if items == nil {
		return []models.ListItem{}
	}
	return items
}
