package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hs2213/proelection/internal/validate"
	"github.com/hs2213/proelection/pkg/logger"
)

// ErrorResponse is the structured JSON error body.
type ErrorResponse struct {
	Error      string               `json:"error"`
	Code       string               `json:"code,omitempty"`
	Violations []validate.Violation `json:"violations,omitempty"`
}

// WriteJSON writes any payload with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a structured JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// ValidationFailed writes a 400 carrying every violated field rule.
func ValidationFailed(w http.ResponseWriter, verr *validate.ValidationError) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:      "validation failed",
		Code:       "validation_failed",
		Violations: verr.Violations,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, "bad_request")
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, "unauthorized")
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, "forbidden")
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, "not_found")
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message, "conflict")
}

func Internal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "internal server error", "internal")
}

// FromError maps an error to the right JSON response. Validation errors
// carry their full violation set.
func FromError(w http.ResponseWriter, err error) {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		ValidationFailed(w, verr)
		return
	}
	Internal(w)
}
