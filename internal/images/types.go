package images

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Image is the catalog row for one stored upload and its renditions.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:i"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Filename     string     `bun:"filename,notnull,unique" json:"filename"`
	OriginalName string     `bun:"original_name" json:"originalName,omitempty"`
	ContentType  string     `bun:"content_type,notnull" json:"contentType"`
	Size         int64      `bun:"size,notnull" json:"size"`
	Width        *int       `bun:"width,nullzero" json:"width,omitempty"`
	Height       *int       `bun:"height,nullzero" json:"height,omitempty"`
	OriginalURL  string     `bun:"original_url,notnull" json:"originalUrl"`
	TinyURL      string     `bun:"tiny_url" json:"tinyUrl,omitempty"`
	MediumURL    string     `bun:"medium_url" json:"mediumUrl,omitempty"`
	LargeURL     string     `bun:"large_url" json:"largeUrl,omitempty"`
	UserID       *uuid.UUID `bun:"user_id,type:uuid,nullzero" json:"userId,omitempty"`
	UploadedAt   time.Time  `bun:"uploaded_at,nullzero,default:current_timestamp" json:"uploadedAt"`
}

// URL returns the address of the requested rendition, falling back to the
// original when that rendition was not derived.
func (i *Image) URL(res Resolution) string {
	switch res {
	case ResolutionTiny:
		if i.TinyURL != "" {
			return i.TinyURL
		}
	case ResolutionMedium:
		if i.MediumURL != "" {
			return i.MediumURL
		}
	case ResolutionLarge:
		if i.LargeURL != "" {
			return i.LargeURL
		}
	}
	return i.OriginalURL
}

// StorageKeys lists every object key that may hold bytes for this file.
func (i *Image) StorageKeys() []string {
	keys := make([]string, 0, len(Resolutions()))
	for _, res := range Resolutions() {
		keys = append(keys, ObjectKey(res, i.Filename))
	}
	return keys
}

// ListFilter narrows image listings.
type ListFilter struct {
	UserID *uuid.UUID
	Limit  int
	Offset int
}
