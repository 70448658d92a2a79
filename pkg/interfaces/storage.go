package interfaces

import "context"

// ObjectStorage abstracts the blob store that holds uploaded image bytes.
// Keys are bucket-relative paths such as "original/<filename>".
type ObjectStorage interface {
	// Upload stores data under key with the supplied content type. Writes
	// are upserts: an existing object under the same key is replaced.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// PublicURL resolves the publicly reachable URL for a stored key. The
	// key does not have to exist; resolution is purely computational.
	PublicURL(key string) string
	// Remove deletes the supplied keys. Missing keys are not an error; a
	// transport or provider failure is.
	Remove(ctx context.Context, keys ...string) error
}
