package error

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Kind groups error codes by how callers should react to them.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindStore        Kind = "store"
	KindInternal     Kind = "internal"
)

// Error codes for different categories
const (
	// Authentication Errors (1xxx)
	ErrCodeUnauthenticated ErrorCode = "AUTH_1001"
	ErrCodeInvalidToken    ErrorCode = "AUTH_1002"
	ErrCodeForbidden       ErrorCode = "AUTH_1003"

	// Validation Errors (2xxx)
	ErrCodeInvalidRequest    ErrorCode = "VALID_2001"
	ErrCodeInvalidSortField  ErrorCode = "VALID_2002"
	ErrCodeInvalidPagination ErrorCode = "VALID_2003"
	ErrCodeInvalidFilter     ErrorCode = "VALID_2004"
	ErrCodeInvalidField      ErrorCode = "VALID_2005"
	ErrCodeInvalidReference  ErrorCode = "VALID_2006"

	// Lookup Errors (3xxx)
	ErrCodeNotFound ErrorCode = "NF_3001"

	// Conflict Errors (4xxx)
	ErrCodeDuplicate ErrorCode = "CONFLICT_4001"
	ErrCodeInUse     ErrorCode = "CONFLICT_4002"

	// Store Errors (5xxx)
	ErrCodeDatabaseError ErrorCode = "DB_5001"
	ErrCodeAuditWrite    ErrorCode = "DB_5002"

	// Server Errors (6xxx)
	ErrCodeInternalServerError ErrorCode = "SERVER_6001"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Kind    Kind      `json:"-"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches kind sentinels (no code) by kind and everything else by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code == "" {
		return t.Kind == e.Kind
	}
	return t.Code == e.Code
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation   = &AppError{Kind: KindValidation}
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized}
	ErrForbidden    = &AppError{Kind: KindForbidden}
	ErrStore        = &AppError{Kind: KindStore}
)

// NewAppError creates a new application error
func NewAppError(code ErrorCode, kind Kind, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// Authentication errors
func ErrUnauthenticated(details string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, KindUnauthorized, "Authentication required", details, nil)
}

func ErrInvalidToken(details string) *AppError {
	return NewAppError(ErrCodeInvalidToken, KindUnauthorized, "Invalid token", details, nil)
}

func ErrMissingCapability(capability string) *AppError {
	return NewAppError(ErrCodeForbidden, KindForbidden, "Insufficient permissions", fmt.Sprintf("Capability: %s", capability), nil)
}

// Validation errors
func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, KindValidation, "Invalid request", details, nil)
}

func ErrInvalidSortField(entity, field string) *AppError {
	return NewAppError(ErrCodeInvalidSortField, KindValidation, "Invalid sort field", fmt.Sprintf("%s cannot be sorted by %q", entity, field), nil)
}

func ErrInvalidPagination(field string, value int) *AppError {
	return NewAppError(ErrCodeInvalidPagination, KindValidation, "Invalid pagination", fmt.Sprintf("%s must be a positive integer, got %d", field, value), nil)
}

func ErrMalformedPagination(field, raw string) *AppError {
	return NewAppError(ErrCodeInvalidPagination, KindValidation, "Invalid pagination", fmt.Sprintf("%s must be a positive integer, got %q", field, raw), nil)
}

func ErrInvalidFilter(key, value string) *AppError {
	return NewAppError(ErrCodeInvalidFilter, KindValidation, "Invalid filter", fmt.Sprintf("%s=%q", key, value), nil)
}

func ErrInvalidField(field, details string) *AppError {
	return NewAppError(ErrCodeInvalidField, KindValidation, "Invalid field", fmt.Sprintf("%s: %s", field, details), nil)
}

func ErrMissingField(field string) *AppError {
	return NewAppError(ErrCodeInvalidField, KindValidation, "Missing required field", fmt.Sprintf("Field: %s", field), nil)
}

func ErrInvalidReference(field, id string) *AppError {
	return NewAppError(ErrCodeInvalidReference, KindValidation, "Referenced record does not exist", fmt.Sprintf("%s: %s", field, id), nil)
}

// Lookup errors
func ErrEntityNotFound(entity, id string) *AppError {
	return NewAppError(ErrCodeNotFound, KindNotFound, fmt.Sprintf("%s not found", entity), fmt.Sprintf("ID: %s", id), nil)
}

// Conflict errors
func ErrDuplicate(entity string, cause error) *AppError {
	return NewAppError(ErrCodeDuplicate, KindConflict, fmt.Sprintf("%s already exists", entity), "", cause)
}

func ErrInUse(entity string, cause error) *AppError {
	return NewAppError(ErrCodeInUse, KindConflict, fmt.Sprintf("%s is still referenced", entity), "", cause)
}

// Database errors
func ErrDatabaseError(operation string, cause error) *AppError {
	return NewAppError(ErrCodeDatabaseError, KindStore, "Database operation failed", fmt.Sprintf("Operation: %s", operation), cause)
}

func ErrAuditWrite(cause error) *AppError {
	return NewAppError(ErrCodeAuditWrite, KindStore, "Audit entry could not be written", "", cause)
}

// Server errors
func ErrInternalServerError(details string, cause error) *AppError {
	return NewAppError(ErrCodeInternalServerError, KindInternal, "Internal server error", details, cause)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}

// Error mapping for HTTP status codes
func GetHTTPStatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
