package groups

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/internal/users"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// defaultExpenseMessage is posted when an expense reference arrives with no
// text of its own.
const defaultExpenseMessage = "sent a fee"

// UserResolver looks up accounts for invitations.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// CreateGroupRequest carries the payload for a new group.
type CreateGroupRequest struct {
	Name      string
	CreatorID uuid.UUID
}

// InviteRequest adds a user to a group by email. Actor must already be a
// member.
type InviteRequest struct {
	GroupID uuid.UUID
	ActorID uuid.UUID
	Email   string
}

// SendMessageRequest posts a chat entry.
type SendMessageRequest struct {
	GroupID       uuid.UUID
	SenderID      uuid.UUID
	Content       string
	ConsumptionID *uuid.UUID
}

// Service exposes the group and chat workflows.
type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)
	Get(ctx context.Context, id uuid.UUID) (*Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error)
	Invite(ctx context.Context, req InviteRequest) (*Member, error)
	Messages(ctx context.Context, groupID, actorID uuid.UUID) ([]*Message, error)
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	groups Repository
	users  UserResolver
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a group service with the required dependencies.
func NewService(groups Repository, resolver UserResolver, opts ...ServiceOption) Service {
	s := &service{
		groups: groups,
		users:  resolver,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts the group together with its creator's admin membership.
func (s *service) Create(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.users.GetByID(ctx, req.CreatorID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	group := &Group{
		ID:        s.id(),
		Name:      name,
		CreatedBy: req.CreatorID,
		CreatedAt: now,
	}
	admin := &Member{
		ID:       s.id(),
		GroupID:  group.ID,
		UserID:   req.CreatorID,
		Role:     RoleAdmin,
		JoinedAt: now,
	}

	created, err := s.groups.CreateWithAdmin(ctx, group, admin)
	if err != nil {
		return nil, err
	}
	s.logger.Info("group created", "group_id", created.ID, "name", created.Name)
	return created, nil
}

// Get returns the group with its member list attached.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.groups.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// ListForUser returns the groups the user belongs to, members attached.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	list, err := s.groups.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, group := range list {
		members, err := s.groups.ListMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}
	return list, nil
}

func (s *service) Invite(ctx context.Context, req InviteRequest) (*Member, error) {
	if _, err := s.groups.GetByID(ctx, req.GroupID); err != nil {
		return nil, err
	}

	actorIsMember, err := s.groups.IsMember(ctx, req.GroupID, req.ActorID)
	if err != nil {
		return nil, err
	}
	if !actorIsMember {
		return nil, ErrNotMember
	}

	invited, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	alreadyMember, err := s.groups.IsMember(ctx, req.GroupID, invited.ID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, ErrAlreadyMember
	}

	member, err := s.groups.AddMember(ctx, &Member{
		ID:       s.id(),
		GroupID:  req.GroupID,
		UserID:   invited.ID,
		Role:     RoleMember,
		JoinedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("group member invited", "group_id", req.GroupID, "user_id", invited.ID)
	return member, nil
}

// Messages returns the group's chat history, oldest first. Only members
// can read it.
func (s *service) Messages(ctx context.Context, groupID, actorID uuid.UUID) ([]*Message, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	isMember, err := s.groups.IsMember(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}
	return s.groups.ListMessages(ctx, groupID)
}

func (s *service) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if _, err := s.groups.GetByID(ctx, req.GroupID); err != nil {
		return nil, err
	}
	isMember, err := s.groups.IsMember(ctx, req.GroupID, req.SenderID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		if req.ConsumptionID == nil {
			return nil, ErrContentRequired
		}
		content = defaultExpenseMessage
	}

	message, err := s.groups.CreateMessage(ctx, &Message{
		ID:            s.id(),
		GroupID:       req.GroupID,
		SenderID:      req.SenderID,
		Content:       content,
		ConsumptionID: req.ConsumptionID,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("group message posted", "group_id", req.GroupID, "message_id", message.ID)
	return message, nil
}

func (s *service) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	return s.groups.IsMember(ctx, groupID, userID)
}
