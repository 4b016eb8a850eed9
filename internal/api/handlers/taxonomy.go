package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/services"
)

// TaxonomyHandler serves the lookup records: categories, languages and
// read-time presets. Public listings show active entries only; admin
// listings show everything.
type TaxonomyHandler struct {
	taxonomy *services.TaxonomyService
}

func NewTaxonomyHandler(t *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: t}
}

func activeOnly(r *http.Request) bool {
	return r.URL.Query().Get("all") != "true"
}

func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.taxonomy.ListCategories(r.Context(), activeOnly(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := h.taxonomy.CreateCategory(r.Context(), c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *TaxonomyHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	c.ID = chi.URLParam(r, "id")
	updated, err := h.taxonomy.UpdateCategory(r.Context(), c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.taxonomy.ListLanguages(r.Context(), activeOnly(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if langs == nil {
		langs = []models.Language{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"languages": langs})
}

func (h *TaxonomyHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var l models.Language
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := h.taxonomy.CreateLanguage(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *TaxonomyHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	var l models.Language
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	l.ID = chi.URLParam(r, "id")
	updated, err := h.taxonomy.UpdateLanguage(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *TaxonomyHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteLanguage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.taxonomy.ListPresets(r.Context(), activeOnly(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if presets == nil {
		presets = []models.ReadTimePreset{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"read_time_presets": presets})
}

func (h *TaxonomyHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var p models.ReadTimePreset
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := h.taxonomy.CreatePreset(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *TaxonomyHandler) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	var p models.ReadTimePreset
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := h.taxonomy.UpdatePreset(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *TaxonomyHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeletePreset(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
