package service

import (
	"errors"
	"fmt"
)

// ErrAlreadyStopped is returned when stopping an entry that has an end time
// already. Treated like a not-found at the API boundary: the "open entry with
// this id" the caller addressed does not exist.
var ErrAlreadyStopped = errors.New("time entry already stopped")

// ValidationError marks input problems the caller can correct. Rejected
// before any write, so a validation failure is never partially applied.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
