package groups

import (
	internalgroups "github.com/monospace/pagebuilder/internal/groups"
)

// Re-exported errors from the internal groups package.
var (
	ErrNameRequired    = internalgroups.ErrNameRequired
	ErrContentRequired = internalgroups.ErrContentRequired
	ErrNotMember       = internalgroups.ErrNotMember
	ErrAlreadyMember   = internalgroups.ErrAlreadyMember
	ErrNotFound        = internalgroups.ErrNotFound
)

// Re-exported types from the internal groups package.
type (
	Role               = internalgroups.Role
	Group              = internalgroups.Group
	Member             = internalgroups.Member
	Message            = internalgroups.Message
	Repository         = internalgroups.Repository
	UserResolver       = internalgroups.UserResolver
	Service            = internalgroups.Service
	ServiceOption      = internalgroups.ServiceOption
	CreateGroupRequest = internalgroups.CreateGroupRequest
	InviteRequest      = internalgroups.InviteRequest
	SendMessageRequest = internalgroups.SendMessageRequest
	GroupNotFoundError = internalgroups.GroupNotFoundError
)

// Membership roles.
const (
	RoleAdmin  = internalgroups.RoleAdmin
	RoleMember = internalgroups.RoleMember
)

// NewService constructs a group service over the given repository.
func NewService(repo Repository, resolver UserResolver, opts ...ServiceOption) Service {
	return internalgroups.NewService(repo, resolver, opts...)
}

// NewMemoryGroupRepository constructs an in-memory group repository.
func NewMemoryGroupRepository() Repository {
	return internalgroups.NewMemoryGroupRepository()
}
