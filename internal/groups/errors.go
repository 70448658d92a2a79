package groups

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired    = errors.New("groups: name is required")
	ErrContentRequired = errors.New("groups: message content is required")
	ErrNotMember       = errors.New("groups: user is not a member of the group")
	ErrAlreadyMember   = errors.New("groups: user is already a member of the group")
	ErrNotFound        = errors.New("groups: group not found")
)

// GroupNotFoundError reports a lookup miss.
type GroupNotFoundError struct {
	Key string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("groups: group %q not found", e.Key)
}

func (e *GroupNotFoundError) Unwrap() error { return ErrNotFound }
