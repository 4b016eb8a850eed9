package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/compiler"
	"github.com/tutorialhub/backend/internal/metrics"
)

type CompilerHandler struct {
	exec *compiler.Service
}

func NewCompilerHandler(exec *compiler.Service) *CompilerHandler {
	return &CompilerHandler{exec: exec}
}

// Execute handles POST /compiler/execute. Backend failures come back as 200
// with an in-band status; only malformed requests are HTTP errors.
func (h *CompilerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req compiler.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	res, err := h.exec.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, compiler.ErrEmptyCode):
			httpx.WriteError(w, http.StatusBadRequest, "code is required")
		case errors.Is(err, compiler.ErrUnsupportedLanguage):
			httpx.WriteError(w, http.StatusBadRequest, "unsupported language")
		default:
			writeServiceError(w, err)
		}
		metrics.Executions.WithLabelValues(req.Language, "rejected").Inc()
		return
	}

	outcome := "degraded"
	if res.Status == compiler.StatusAccepted {
		outcome = "ok"
	}
	metrics.Executions.WithLabelValues(req.Language, outcome).Inc()
	httpx.WriteJSON(w, http.StatusOK, res)
}

// Languages handles GET /compiler/languages.
func (h *CompilerHandler) Languages(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"languages": h.exec.SupportedLanguages(),
	})
}

// Health handles GET /compiler/health.
func (h *CompilerHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.exec.HealthCheck(r.Context())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusServiceUnavailable
	}
	httpx.WriteJSON(w, status, report)
}
