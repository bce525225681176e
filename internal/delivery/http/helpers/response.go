package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeValidation    = "validation_error"
	ErrCodeNotAllowed    = "not_allowed"
	ErrCodeRateLimited   = "rate_limited"
	ErrCodeUnavailable   = "unavailable"
	ErrCodeInternalError = "internal_error"
)

// APIError is the body of every error response.
// swagger:model APIError
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an APIError with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIError{Error: message, Code: code})
}

// WriteJSONErrorDetails writes an APIError carrying field-level details.
func WriteJSONErrorDetails(w http.ResponseWriter, statusCode int, code, message, details string) {
	WriteJSON(w, statusCode, APIError{Error: message, Code: code, Details: details})
}
