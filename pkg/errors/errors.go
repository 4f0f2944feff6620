package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when there's a conflict (e.g., idempotency)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidStateTransition is returned when an invalid state transition is attempted
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// Validation is shorthand for a field-less ErrValidation.
func Validation(format string, args ...interface{}) error {
	return &ErrValidation{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return goerrors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *ErrUnauthorized
	return goerrors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return goerrors.As(err, &target)
}

// HTTPStatus maps an error to the response status code. Unknown errors are 500.
func HTTPStatus(err error) int {
	var (
		notFound     *ErrNotFound
		unauthorized *ErrUnauthorized
		conflict     *ErrConflict
		validation   *ErrValidation
		transition   *ErrInvalidStateTransition
	)
	switch {
	case goerrors.As(err, &validation), goerrors.As(err, &transition):
		return http.StatusBadRequest
	case goerrors.As(err, &notFound):
		return http.StatusNotFound
	case goerrors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case goerrors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
