package images

import (
	"errors"
	"fmt"
)

var (
	ErrNoFile          = errors.New("images: no file provided")
	ErrUnsupportedType = errors.New("images: unsupported content type")
	ErrFileTooLarge    = errors.New("images: file exceeds upload limit")
	ErrURLInvalid      = errors.New("images: source url is invalid")
	ErrFetchFailed     = errors.New("images: could not fetch source url")
	ErrNotFound        = errors.New("images: image not found")
)

// UnsupportedTypeError reports an upload with a content type outside the
// allowlist.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("images: unsupported content type %q", e.ContentType)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// FileTooLargeError reports an upload over the byte ceiling.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("images: file of %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// ImageNotFoundError reports a lookup miss by id or filename.
type ImageNotFoundError struct {
	Key string
}

func (e *ImageNotFoundError) Error() string {
	return fmt.Sprintf("images: image %q not found", e.Key)
}

func (e *ImageNotFoundError) Unwrap() error { return ErrNotFound }
