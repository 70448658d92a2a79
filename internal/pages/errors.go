package pages

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired = errors.New("pages: title is required")
	ErrSlugInvalid   = errors.New("pages: slug contains invalid characters")
	ErrInvalidTree   = errors.New("pages: component snapshot is invalid")
	ErrNotFound      = errors.New("pages: page not found")
)

// PageNotFoundError reports a lookup miss by id or slug.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("pages: page %q not found", e.Key)
}

func (e *PageNotFoundError) Unwrap() error { return ErrNotFound }
