package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeStore                = "STORE_ERROR"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, nil)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound, nil)
}

// DuplicateApplication is reported as 400 to match the public API contract.
func DuplicateApplication(message string) *AppError {
	return New(CodeDuplicateApplication, message, http.StatusBadRequest, nil)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest, nil)
}

func InvalidTransition(message string, err error) *AppError {
	return New(CodeInvalidTransition, message, http.StatusConflict, err)
}

// Store wraps a persistence failure. The message is what clients see; err is only logged.
func Store(message string, err error) *AppError {
	return New(CodeStore, message, http.StatusInternalServerError, err)
}

func RateLimited(message string) *AppError {
	return New(CodeRateLimited, message, http.StatusTooManyRequests, nil)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As returns the AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
