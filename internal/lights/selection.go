package lights

import (
	"errors"
	"fmt"
)

// SelectionError reports a light selection that cannot be resolved against
// the backend: a number or name the user typed that matches nothing. It is
// a user-input problem, not a backend failure, and surfaces as a
// configuration error.
type SelectionError struct {
	msg string
}

func (e *SelectionError) Error() string { return e.msg }

func SelectionErrorf(format string, args ...any) *SelectionError {
	return &SelectionError{msg: fmt.Sprintf(format, args...)}
}

func IsSelectionError(err error) bool {
	var se *SelectionError
	return errors.As(err, &se)
}
