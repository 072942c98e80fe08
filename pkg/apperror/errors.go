package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. The CLI maps kinds to messages and exit codes.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptyCart         Kind = "empty_cart"
	KindIOUnavailable     Kind = "io_unavailable"
	KindInternal          Kind = "internal"
)

// Error is a kinded application error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target without a message
// matches every error of its kind, so errors.Is(err, apperror.ErrNotFound)
// works for any domain sentinel built on KindNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind-only sentinels.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrEmptyCart         = &Error{Kind: KindEmptyCart}
	ErrIOUnavailable     = &Error{Kind: KindIOUnavailable}
)

// New creates a sentinel-style error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a kinded error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IO wraps a file-system failure as io_unavailable.
func IO(op, path string, err error) *Error {
	return &Error{Kind: KindIOUnavailable, Message: fmt.Sprintf("%s %s", op, path), Err: err}
}

// Invalid builds an invalid_input error with a formatted message.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
