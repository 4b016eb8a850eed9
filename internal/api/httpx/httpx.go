// Package httpx holds the JSON response helpers shared by every handler.
package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the boundary error envelope: a human-readable message plus
// optional field-level details.
type APIError struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Message: msg})
}

func WriteFieldErrors(w http.ResponseWriter, status int, msg string, fields any) {
	WriteJSON(w, status, APIError{Message: msg, Errors: fields})
}
