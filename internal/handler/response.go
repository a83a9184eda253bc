package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//   {"error": "Flavor not found"}
//
// The message is the one thing the client sees. Infrastructure failures all
// collapse to "Internal Server Error"; their details go to the log only.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/acme-ice-cream/internal/apperror"
)

// InternalErrorMessage is the only thing a client learns about a server-side failure.
const InternalErrorMessage = "Internal Server Error"

// ErrorResponse is the error body returned by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be written BEFORE the body. Once Encode writes to
// w, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation → 400, message from the AppError
//	apperror.ErrNotFound   → 404, message from the AppError
//	anything else          → 500, generic message
//
// errors.As walks the whole chain, so an AppError wrapped by the service
// layer ("updating flavor: %w") is still found.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	// Unknown error — return a generic 500.
	// NEVER expose the raw error: it may contain SQL, hostnames or file paths.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: InternalErrorMessage})
}
