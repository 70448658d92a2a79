package users

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("users: user not found")

// UserNotFoundError reports a lookup miss by id or email.
type UserNotFoundError struct {
	Key string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("users: user %q not found", e.Key)
}

func (e *UserNotFoundError) Unwrap() error { return ErrNotFound }
