package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the API.
const (
	// Validation errors (2000-2999)
	ErrInvalidRequest = "VAL_001" // Malformed request
	ErrUnknownReport  = "VAL_002" // Report kind not recognized
	ErrReportConflict = "VAL_003" // Report already running

	// Server errors (5000-5999)
	ErrInternalServer  = "SRV_001" // Internal server error
	ErrExternalService = "SRV_003" // Upstream service failure
)

// Error code to HTTP status mapping.
var httpStatusMap = map[string]int{
	ErrInvalidRequest:  http.StatusBadRequest,
	ErrUnknownReport:   http.StatusNotFound,
	ErrReportConflict:  http.StatusConflict,
	ErrInternalServer:  http.StatusInternalServerError,
	ErrExternalService: http.StatusBadGateway,
}

// APIError is the standard error body returned to clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes a standardized error response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error in an APIError with the given code.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
