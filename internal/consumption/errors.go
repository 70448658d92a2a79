package consumption

import (
	"errors"
	"fmt"
)

var (
	ErrDescriptionRequired = errors.New("consumption: description is required")
	ErrAmountInvalid       = errors.New("consumption: amount must be positive")
	ErrForbidden           = errors.New("consumption: user may not access this record")
	ErrNotFound            = errors.New("consumption: record not found")
)

// NotFoundError reports a lookup miss.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("consumption: record %q not found", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
