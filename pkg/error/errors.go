package error

import (
	"context"
	"errors"
	"net/http"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

// AppError is the transport-facing form of an error: what a client is allowed to see.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Codes that only exist at the HTTP edge.
const (
	CodeRouteNotFound = "ROUTE_404"
	CodeRateLimited   = "RATE_LIMITED"
	CodeCancelled     = "REQUEST_CANCELLED"
)

const unexpectedMessage = "An unexpected error occurred"

var (
	ErrRouteNotFound = &AppError{Code: CodeRouteNotFound, Message: "Route not found", Status: http.StatusNotFound}
	ErrRateLimited   = &AppError{Code: CodeRateLimited, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests}
	ErrCancelled     = &AppError{Code: CodeCancelled, Message: "Request was cancelled", Status: http.StatusServiceUnavailable}
	ErrInternal      = &AppError{Code: string(domainerr.ErrCodeInternalServerError), Message: unexpectedMessage, Status: http.StatusInternalServerError}
)

// MapError converts any error returned by a use case into its client-facing form.
// Store and internal failures keep their code but never leak their cause.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCancelled
	}

	var domainErr *domainerr.AppError
	if !errors.As(err, &domainErr) || domainErr.Code == "" {
		return ErrInternal
	}

	status := domainerr.GetHTTPStatusCode(domainErr)
	switch domainErr.Kind {
	case domainerr.KindStore, domainerr.KindInternal, "":
		return &AppError{Code: string(domainErr.Code), Message: unexpectedMessage, Status: status}
	}

	message := domainErr.Message
	if domainErr.Details != "" {
		message = message + ": " + domainErr.Details
	}
	return &AppError{Code: string(domainErr.Code), Message: message, Status: status}
}
