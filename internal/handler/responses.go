package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers already sent; nothing left to do but log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP error response.
// Validation errors become 400 with the domain message; everything else is a
// 500 with a generic message so internals are not leaked.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceError(err)
	respondError(w, status, message)
}

func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrEmptyInterval),
		errors.Is(err, domain.ErrEmptyGameName),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidDuration):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
