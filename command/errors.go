package command

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the seven error kinds spec.md §7 names.
type Kind string

const (
	NotFound          Kind = "NotFound"
	Exists            Kind = "Exists"
	TypeMismatch      Kind = "TypeMismatch"
	ValidationFailure Kind = "ValidationFailure"
	ExpressionError   Kind = "ExpressionError"
	IoError           Kind = "IoError"
	BadParameter      Kind = "BadParameter"
)

// Error is the typed error every command body returns on failure.
// Cause, when set, is the wrapped underlying I/O or parse failure,
// reachable through Unwrap (the standard errors.Unwrap/Is/As) while the
// Kind sentinel survives the wrap, per SPEC_FULL.md §9. *Error has no
// Cause method, so github.com/pkg/errors.Cause stops at the *Error
// itself.
type Error struct {
	Kind    Kind
	Message string
	Columns []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func notFound(format string, args ...interface{}) *Error {
	return newError(NotFound, format, args...)
}

func exists(format string, args ...interface{}) *Error {
	return newError(Exists, format, args...)
}

func typeMismatch(format string, args ...interface{}) *Error {
	return newError(TypeMismatch, format, args...)
}

func badParameter(format string, args ...interface{}) *Error {
	return newError(BadParameter, format, args...)
}

func expressionError(cause error, format string, args ...interface{}) *Error {
	return wrapError(ExpressionError, cause, format, args...)
}

func ioError(cause error, format string, args ...interface{}) *Error {
	return wrapError(IoError, cause, format, args...)
}

func validationFailure(columns []string) *Error {
	return &Error{Kind: ValidationFailure, Message: "row failed validation", Columns: columns}
}

// AsError unwraps err (following github.com/pkg/errors.Cause chains
// too) to find a *command.Error, if any.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			return ce, true
		}
		cause := errors.Cause(err)
		if cause == err {
			return nil, false
		}
		err = cause
	}
	return nil, false
}
