package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Error codes surfaced to API clients.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeDuplicateRut        = "DUPLICATE_RUT"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidInput(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidInput, message, http.StatusBadRequest, details)
}

func NewDuplicateEmail() error {
	return NewDomainError(CodeDuplicateEmail, "email already registered", http.StatusConflict, nil)
}

func NewDuplicateRut() error {
	return NewDomainError(CodeDuplicateRut, "rut already registered", http.StatusConflict, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized, nil)
}

func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConstraintViolation(constraint string) error {
	return NewDomainError(CodeConstraintViolation, "conflicting record", http.StatusConflict,
		map[string]any{"constraint": constraint})
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "too many requests, try again later", http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch {
	case err.Code == http.StatusNotFound:
		return NewDomainError(CodeNotFound, err.Message, err.Code, nil)
	case err.Code == http.StatusUnauthorized:
		return NewDomainError(CodeUnauthenticated, err.Message, err.Code, nil)
	case err.Code == http.StatusForbidden:
		return NewDomainError(CodeForbidden, err.Message, err.Code, nil)
	case err.Code >= 500:
		return NewInternalError(err).(*DomainError)
	default:
		return NewDomainError(CodeInvalidInput, err.Message, err.Code, nil)
	}
}
