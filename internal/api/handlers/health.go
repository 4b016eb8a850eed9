package handlers

import (
	"net/http"
	"time"

	"github.com/tutorialhub/backend/internal/api/httpx"
)

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
