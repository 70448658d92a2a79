package groups

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role names a member's standing inside a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Group is a shared space users post messages and expenses into.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedBy uuid.UUID `bun:"created_by,notnull,type:uuid" json:"createdBy"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`

	Members []*Member `bun:"rel:has-many,join:id=group_id" json:"members,omitempty"`
}

// Member ties a user to a group.
type Member struct {
	bun.BaseModel `bun:"table:group_members,alias:gm"`

	ID       uuid.UUID `bun:",pk,type:uuid" json:"id"`
	GroupID  uuid.UUID `bun:"group_id,notnull,type:uuid" json:"groupId"`
	UserID   uuid.UUID `bun:"user_id,notnull,type:uuid" json:"userId"`
	Role     Role      `bun:"role,notnull" json:"role"`
	JoinedAt time.Time `bun:"joined_at,nullzero,default:current_timestamp" json:"joinedAt"`
}

// Message is one chat entry. Messages that announce an expense carry the
// consumption record's id.
type Message struct {
	bun.BaseModel `bun:"table:group_messages,alias:msg"`

	ID            uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	GroupID       uuid.UUID  `bun:"group_id,notnull,type:uuid" json:"groupId"`
	SenderID      uuid.UUID  `bun:"sender_id,notnull,type:uuid" json:"senderId"`
	Content       string     `bun:"content,notnull" json:"content"`
	ConsumptionID *uuid.UUID `bun:"consumption_id,type:uuid,nullzero" json:"consumptionId,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
}
