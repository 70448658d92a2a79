package consumption

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Consumption is one recorded expense, optionally shared with a group.
type Consumption struct {
	bun.BaseModel `bun:"table:consumptions,alias:c"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Description string     `bun:"description,notnull" json:"description"`
	Amount      float64    `bun:"amount,notnull" json:"amount"`
	Date        time.Time  `bun:"date,notnull" json:"date"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId"`
	GroupID     *uuid.UUID `bun:"group_id,type:uuid,nullzero" json:"groupId,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
}

// ListFilter selects records visible to one user: their own plus those
// shared with any of the listed groups.
type ListFilter struct {
	UserID   uuid.UUID
	GroupIDs []uuid.UUID
}
