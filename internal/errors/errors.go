package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Codes carried by APIError.ErrorCode and echoed as the problem's error_code
const (
	CodeValidation  = "VALIDATION_FAILED"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is a request-level failure raised by the HTTP layer itself, as
// opposed to an AppError surfacing from the data pipeline.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// FieldError names the query parameter that failed validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation rejects one query parameter
func ErrValidation(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidation,
		Message:    fmt.Sprintf("invalid %s: %s", field, message),
		Details:    FieldError{Field: field, Message: message},
	}
}

// NotFoundError reports an unknown resource
func NotFoundError(resource string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  CodeNotFound,
		Message:    resource + " not found",
	}
}

// ErrRateLimited is returned once a client exceeds the request budget
func ErrRateLimited() *APIError {
	return &APIError{
		StatusCode: http.StatusTooManyRequests,
		ErrorCode:  CodeRateLimited,
		Message:    "rate limit exceeded, retry later",
	}
}
