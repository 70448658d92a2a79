package images

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts image catalog persistence.
type Repository interface {
	Create(ctx context.Context, record *Image) (*Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Image, error)
	GetByFilename(ctx context.Context, filename string) (*Image, error)
	List(ctx context.Context, filter ListFilter) ([]*Image, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewImageRepository builds the bun-backed generic repository for images.
func NewImageRepository(db *bun.DB) repository.Repository[*Image] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Image]{
		NewRecord: func() *Image { return &Image{} },
		GetID: func(i *Image) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Image, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "filename"
		},
		GetIdentifierValue: func(i *Image) string {
			return i.Filename
		},
	})
}
