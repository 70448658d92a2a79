package consumption

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts expense persistence.
type Repository interface {
	Create(ctx context.Context, record *Consumption) (*Consumption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Consumption, error)
	ListVisible(ctx context.Context, filter ListFilter) ([]*Consumption, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewConsumptionRepository builds the bun-backed generic repository for expenses.
func NewConsumptionRepository(db *bun.DB) repository.Repository[*Consumption] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Consumption]{
		NewRecord: func() *Consumption { return &Consumption{} },
		GetID: func(c *Consumption) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Consumption, id uuid.UUID) {
			c.ID = id
		},
	})
}
