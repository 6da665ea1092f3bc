package errors

import "net/http"

// ErrorDetail is the error payload inside an ErrorResponse.
type ErrorDetail struct {
	Message string                 `json:"message"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the response body for an error. When includeInternal
// is false the raw error message is replaced by the hint (or a generic message)
// so internal details never leak outside development mode.
func NewErrorResponse(err error, includeInternal bool) *ErrorResponse {
	detail := ErrorDetail{
		Hint:    Hint(err),
		Details: Details(err),
	}

	if includeInternal {
		detail.Message = err.Error()
	} else if detail.Hint != "" {
		detail.Message = detail.Hint
	} else {
		detail.Message = "An unexpected error occurred"
	}

	return &ErrorResponse{Error: detail}
}

// HTTPStatusFromErr maps a marked error to its HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsValidation(err), IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsPermissionDenied(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
