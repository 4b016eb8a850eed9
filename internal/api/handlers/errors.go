package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tutorialhub/backend/internal/api/httpx"
	repo "github.com/tutorialhub/backend/internal/repository"
	"github.com/tutorialhub/backend/internal/services"
)

// writeServiceError maps service/repository errors onto the HTTP taxonomy.
// Anything unrecognized is a 500 with detail suppressed.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve services.ValidationError
	var ce repo.ConflictError

	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	case errors.As(err, &ve):
		if len(ve.Fields) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, ve.Message, ve.Fields)
		} else {
			httpx.WriteError(w, http.StatusBadRequest, ve.Message)
		}
	case errors.As(err, &ce):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, ce.Error(),
			map[string]string{ce.Field: "already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
