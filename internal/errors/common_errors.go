package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures of the attendance pipeline
type ErrorType string

const (
	// ErrTypeParsing: an input file could not be decoded at all
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeStorage: an output could not be written
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeSchema: an input table lacks a required column
	ErrTypeSchema ErrorType = "SCHEMA"
	// ErrTypeValidation: a caller-supplied argument was rejected
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeNotFound: an input file or an employee does not exist
	ErrTypeNotFound ErrorType = "NOT_FOUND"
	// ErrTypeConfig: the configuration cannot serve the request
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeUnavailable: the cleaned data has not been loaded yet
	ErrTypeUnavailable ErrorType = "UNAVAILABLE"
)

// AppError is a classified pipeline error. Cell-level parse failures never
// become AppErrors; they degrade to missing values instead.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewSchemaError reports an input table that lacks a required column
func NewSchemaError(file string, missing []string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("%s is missing required columns %v", file, missing), nil).
		WithContext("file", file).
		WithContext("missing_columns", missing)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewUnavailableError reports that the data a request needs is not loaded
func NewUnavailableError(message string) *AppError {
	return NewAppError(ErrTypeUnavailable, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err or any error it wraps is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
