package apperror

import (
	"errors"
	"net/http"
)

// Kind is the client-facing failure category carried in error envelopes.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindTooLarge        Kind = "too_large"
	KindRateLimited     Kind = "rate_limited"
	KindUnavailable     Kind = "unavailable"
	KindInternal        Kind = "internal"
)

var kindByStatus = map[int]Kind{
	http.StatusBadRequest:            KindInvalidInput,
	http.StatusUnauthorized:          KindUnauthenticated,
	http.StatusForbidden:             KindForbidden,
	http.StatusNotFound:              KindNotFound,
	http.StatusConflict:              KindConflict,
	http.StatusRequestEntityTooLarge: KindTooLarge,
	http.StatusTooManyRequests:       KindRateLimited,
	http.StatusServiceUnavailable:    KindUnavailable,
}

// AppError pairs an HTTP status with a message that is safe to show callers.
// Err keeps the underlying cause for logs and errors.Is.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Kind() Kind {
	if k, ok := kindByStatus[e.Code]; ok {
		return k
	}
	if e.Code < http.StatusInternalServerError {
		return KindInvalidInput
	}
	return KindInternal
}

func New(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BadRequest is the InvalidInput condition: malformed or rejected request data.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Unauthorized is the Unauthenticated condition: missing, invalid or expired credentials.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

// Unavailable marks storage or dependency outages. Reads may degrade on it, writes surface it.
func Unavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, "Service temporarily unavailable", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// As returns the outermost AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the status code carried by err, or 500 for foreign errors.
func CodeOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code int) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
