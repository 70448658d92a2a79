package components

import (
	internalcomponents "github.com/monospace/pagebuilder/internal/components"
)

// Re-exported errors from the internal components package.
var (
	ErrInvalidType   = internalcomponents.ErrInvalidType
	ErrFieldMismatch = internalcomponents.ErrFieldMismatch
	ErrNotFound      = internalcomponents.ErrNotFound
)

// Re-exported types from the internal components package.
type (
	Type                   = internalcomponents.Type
	Style                  = internalcomponents.Style
	Position               = internalcomponents.Position
	TextProps              = internalcomponents.TextProps
	ImageProps             = internalcomponents.ImageProps
	IconProps              = internalcomponents.IconProps
	Component              = internalcomponents.Component
	Store                  = internalcomponents.Store
	Service                = internalcomponents.Service
	Option                 = internalcomponents.Option
	CreateComponentRequest = internalcomponents.CreateComponentRequest
	UpdateComponentRequest = internalcomponents.UpdateComponentRequest
	ListResult             = internalcomponents.ListResult
	TypeError              = internalcomponents.TypeError
	FieldMismatchError     = internalcomponents.FieldMismatchError
	ComponentNotFoundError = internalcomponents.ComponentNotFoundError
)

// Component type constants.
const (
	TypeText      = internalcomponents.TypeText
	TypeImage     = internalcomponents.TypeImage
	TypeIcon      = internalcomponents.TypeIcon
	TypeContainer = internalcomponents.TypeContainer
	TypeRow       = internalcomponents.TypeRow
	TypeColumn    = internalcomponents.TypeColumn
)

// NewStore constructs an empty component tree store.
func NewStore() *Store {
	return internalcomponents.NewStore()
}

// NewService constructs a component service over the given store.
func NewService(store *Store, opts ...Option) Service {
	return internalcomponents.NewService(store, opts...)
}

// Seed loads a small demonstration tree into the store.
func Seed(store *Store) {
	internalcomponents.Seed(store)
}
