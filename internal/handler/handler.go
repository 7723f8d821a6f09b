// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/findash/findash/internal/handler/dto"
)

// Handler provides fallback responses for unmatched routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing sensible left to do.
		_ = err
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseID extracts a numeric path parameter, defaulting to "id".
// Writes a 400 response and returns false when the value is missing or
// not a valid integer.
func parseID(w http.ResponseWriter, r *http.Request, param ...string) (int64, bool) {
	name := "id"
	if len(param) > 0 {
		name = param[0]
	}

	raw := chi.URLParam(r, name)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Missing "+name+" path parameter")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Path parameter "+name+" must be an integer")
		return 0, false
	}

	return id, true
}

// emptyAsList keeps empty collections serializing as [] rather than null.
func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
