package pages

import (
	internalpages "github.com/monospace/pagebuilder/internal/pages"
)

// Re-exported errors from the internal pages package.
var (
	ErrTitleRequired = internalpages.ErrTitleRequired
	ErrSlugInvalid   = internalpages.ErrSlugInvalid
	ErrInvalidTree   = internalpages.ErrInvalidTree
	ErrNotFound      = internalpages.ErrNotFound
)

// DefaultPageSize is the listing page size applied when none is requested.
const DefaultPageSize = internalpages.DefaultPageSize

// Re-exported types from the internal pages package.
type (
	Page              = internalpages.Page
	ListFilter        = internalpages.ListFilter
	Repository        = internalpages.Repository
	Service           = internalpages.Service
	ServiceOption     = internalpages.ServiceOption
	IDGenerator       = internalpages.IDGenerator
	CreatePageRequest = internalpages.CreatePageRequest
	UpdatePageRequest = internalpages.UpdatePageRequest
	ListPagesRequest  = internalpages.ListPagesRequest
	ListResult        = internalpages.ListResult
	PageNotFoundError = internalpages.PageNotFoundError
)

// NewService constructs a page service over the given repository.
func NewService(repo Repository, opts ...ServiceOption) Service {
	return internalpages.NewService(repo, opts...)
}

// NewMemoryPageRepository constructs an in-memory page repository.
func NewMemoryPageRepository() Repository {
	return internalpages.NewMemoryPageRepository()
}
