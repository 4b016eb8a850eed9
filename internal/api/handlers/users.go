package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/middleware"
	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
	"github.com/tutorialhub/backend/internal/services"
)

// UsersHandler is the admin user-management surface.
type UsersHandler struct {
	users     *services.UserService
	analytics *services.AnalyticsService
}

func NewUsersHandler(users *services.UserService, analytics *services.AnalyticsService) *UsersHandler {
	return &UsersHandler{users: users, analytics: analytics}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := repo.ListUsersParams{Role: q.Get("role")}
	if v := q.Get("active"); v != "" {
		active := v == "true"
		p.Active = &active
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		p.PageSize = n
	}

	users, total, err := h.users.AdminList(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
	})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

type createUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	u := models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	created, err := h.users.AdminCreate(r.Context(), u, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	var patch services.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	updated, err := h.users.AdminUpdate(r.Context(), actor.UserID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())
	if err := h.users.AdminDelete(r.Context(), actor.UserID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Analytics handles GET /admin/analytics?from=&to= (RFC 3339 dates).
func (h *UsersHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		from = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		to = t
	}

	report, err := h.analytics.Report(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}
