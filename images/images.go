package images

import (
	internalimages "github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// ObjectStorage exports the storage backend contract used by the service.
type ObjectStorage = interfaces.ObjectStorage

// Re-exported errors from the internal images package.
var (
	ErrNoFile          = internalimages.ErrNoFile
	ErrUnsupportedType = internalimages.ErrUnsupportedType
	ErrFileTooLarge    = internalimages.ErrFileTooLarge
	ErrURLInvalid      = internalimages.ErrURLInvalid
	ErrFetchFailed     = internalimages.ErrFetchFailed
	ErrNotFound        = internalimages.ErrNotFound
)

// Re-exported types from the internal images package.
type (
	Image                = internalimages.Image
	Resolution           = internalimages.Resolution
	Profile              = internalimages.Profile
	Variant              = internalimages.Variant
	Resizer              = internalimages.Resizer
	Repository           = internalimages.Repository
	Service              = internalimages.Service
	ServiceOption        = internalimages.ServiceOption
	UploadImageRequest   = internalimages.UploadImageRequest
	UploadFromURLRequest = internalimages.UploadFromURLRequest
	ListImagesRequest    = internalimages.ListImagesRequest
	ListResult           = internalimages.ListResult
	UnsupportedTypeError = internalimages.UnsupportedTypeError
	FileTooLargeError    = internalimages.FileTooLargeError
	ImageNotFoundError   = internalimages.ImageNotFoundError
)

// Rendition identifiers.
const (
	ResolutionOriginal = internalimages.ResolutionOriginal
	ResolutionTiny     = internalimages.ResolutionTiny
	ResolutionMedium   = internalimages.ResolutionMedium
	ResolutionLarge    = internalimages.ResolutionLarge
)

// NewService constructs an image service over the given repository and store.
func NewService(repo Repository, store ObjectStorage, opts ...ServiceOption) Service {
	return internalimages.NewService(repo, store, opts...)
}

// NewMemoryImageRepository constructs an in-memory image repository.
func NewMemoryImageRepository() Repository {
	return internalimages.NewMemoryImageRepository()
}
