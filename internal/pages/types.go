package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/monospace/pagebuilder/internal/components"
)

// Page is a saved canvas: a titled, slugged snapshot of a component tree.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID          uuid.UUID               `bun:",pk,type:uuid" json:"id"`
	Title       string                  `bun:"title,notnull" json:"title"`
	Slug        string                  `bun:"slug,notnull" json:"slug"`
	Components  []*components.Component `bun:"components,type:jsonb,notnull" json:"components"`
	Metadata    map[string]any          `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	IsPublished bool                    `bun:"is_published,notnull,default:false" json:"isPublished"`
	UserID      *uuid.UUID              `bun:"user_id,type:uuid,nullzero" json:"userId,omitempty"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time               `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// ListFilter narrows page listings.
type ListFilter struct {
	UserID    *uuid.UUID
	Published *bool
	Limit     int
	Offset    int
}
