package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/metrics"
	"github.com/tutorialhub/backend/internal/storage"
)

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(u *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: u}
}

// UploadImage handles POST /upload/image (multipart field "image").
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// One extra byte over the cap turns a silent truncation into a 413.
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes+1024)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		metrics.Uploads.WithLabelValues("too_large").Inc()
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "image exceeds the 5MB limit")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "multipart field 'image' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	res, err := h.uploader.UploadImage(r.Context(), data)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		metrics.Uploads.WithLabelValues("too_large").Inc()
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "image exceeds the 5MB limit")
		return
	case errors.Is(err, storage.ErrUnsupportedType):
		metrics.Uploads.WithLabelValues("bad_type").Inc()
		httpx.WriteError(w, http.StatusUnsupportedMediaType, "only image uploads are accepted")
		return
	case err != nil:
		metrics.Uploads.WithLabelValues("provider_error").Inc()
		httpx.WriteError(w, http.StatusBadGateway, "image storage provider failed")
		return
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	httpx.WriteJSON(w, http.StatusCreated, res)
}

// DeleteImage handles DELETE /upload/image/{publicId}. The id is a slash-
// containing object key, so the route uses a wildcard.
func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	err := h.uploader.Delete(r.Context(), publicID)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		httpx.WriteError(w, http.StatusNotFound, "no such image")
		return
	case err != nil:
		httpx.WriteError(w, http.StatusBadGateway, "image storage provider failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
