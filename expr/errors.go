package expr

import (
	"errors"
	"fmt"
)

// TypeError marks an evaluation failure caused by an operator applied to
// an unsuitable type combination (spec.md §7's TypeMismatch kind), as
// opposed to a generic parse/evaluation failure (ExpressionError).
type TypeError struct {
	msg string
}

func (e *TypeError) Error() string { return e.msg }

func newTypeError(format string, args ...interface{}) error {
	return &TypeError{msg: fmt.Sprintf(format, args...)}
}

// IsTypeError reports whether err is (or wraps) a *TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}
