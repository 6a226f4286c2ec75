// Package apperrors defines the error kinds reported by the search engine.
// Every error carries one of the sentinel kinds so callers can branch with
// errors.Is without parsing messages.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
	ErrNotFound   = errors.New("not found")
)

// Error is a kinded error tagged with the operation that produced it.
type Error struct {
	Kind    error
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, op string, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Newf(kind error, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsState(err error) bool { return errors.Is(err, ErrState) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
