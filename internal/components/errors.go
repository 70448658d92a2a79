package components

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidType signals an unknown component variant tag.
	ErrInvalidType = errors.New("components: invalid component type")
	// ErrFieldMismatch signals a payload field that does not belong to the
	// declared variant.
	ErrFieldMismatch = errors.New("components: field not allowed for component type")
	// ErrNotFound signals a lookup miss anywhere in the tree.
	ErrNotFound = errors.New("components: component not found")
)

// TypeError reports an unknown variant tag.
type TypeError struct {
	Type Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("components: invalid component type %q", string(e.Type))
}

func (e *TypeError) Unwrap() error { return ErrInvalidType }

// FieldMismatchError reports a payload field supplied for a variant that
// cannot carry it.
type FieldMismatchError struct {
	Type  Type
	Field string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("components: field %q not allowed for type %q", e.Field, string(e.Type))
}

func (e *FieldMismatchError) Unwrap() error { return ErrFieldMismatch }

// ComponentNotFoundError reports a tree lookup miss.
type ComponentNotFoundError struct {
	ID uuid.UUID
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("components: component %q not found", e.ID)
}

func (e *ComponentNotFoundError) Unwrap() error { return ErrNotFound }
