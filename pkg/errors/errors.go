package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Every failure in the application maps onto exactly one of
// these; the HTTP boundary translates kind to status code.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrInternal     = errors.New("internal error")
)

// AppError is a structured application error carrying its kind, a
// client-safe message, and the HTTP status the boundary should emit.
type AppError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
	Kind    error  `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is reports whether the target matches this error's kind, so callers can
// use errors.Is(err, apperrors.ErrUnauthorized) on constructed errors.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// BadRequest creates a 400 error for malformed or missing input.
func BadRequest(message string) *AppError {
	return &AppError{
		Message: message,
		Status:  http.StatusBadRequest,
		Kind:    ErrBadRequest,
	}
}

// Unauthorized creates a 401 error for a bad credential, an invalid,
// expired, or revoked token, or a bad API key.
func Unauthorized(message string) *AppError {
	return &AppError{
		Message: message,
		Status:  http.StatusUnauthorized,
		Kind:    ErrUnauthorized,
	}
}

// Forbidden creates a 403 error for an authenticated but not permitted caller.
func Forbidden(message string) *AppError {
	return &AppError{
		Message: message,
		Status:  http.StatusForbidden,
		Kind:    ErrForbidden,
	}
}

// NotFound creates a 404 error for an absent entity.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Kind:    ErrNotFound,
	}
}

// Internal creates a 500 error. The message is always generic; the root
// cause is kept in Err for logging and never reaches the client.
func Internal(err error) *AppError {
	return &AppError{
		Message: "something went wrong on our end",
		Status:  http.StatusInternalServerError,
		Kind:    ErrInternal,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
// Unrecognized errors are internal by definition.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
