// Package errs defines the domain error taxonomy. Services return these;
// handlers translate them to HTTP via utils.HandleError and never the other
// way around.
package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindValidation   Kind = iota // malformed or missing input
	KindNotFound                 // referenced record absent
	KindForbidden                // ownership or role mismatch
	KindInvalidState             // lifecycle guard failed (status / time window)
	KindConflict                 // concurrent transition lost the race
	KindExternal                 // payment/email provider failure
)

type Error struct {
	Kind    Kind
	Message string // localized, user-facing
	Err     error  // internal detail, withheld in production
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func External(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Message: msg, Err: err}
}

// Wrap attaches internal detail to a domain error.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

// ErrDuplicateBookingNumber signals a booking-number unique-constraint hit;
// callers regenerate and reinsert instead of failing.
var ErrDuplicateBookingNumber = errors.New("duplicate booking number")

// HTTPStatus maps a domain error to its response status.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation, KindInvalidState:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, k Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == k
}
