package consumption

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/groups"
	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// GroupMembership answers which groups a user can see expenses through.
type GroupMembership interface {
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*groups.Group, error)
}

// CreateConsumptionRequest records one expense. GroupID shares it with a
// group the owner must belong to.
type CreateConsumptionRequest struct {
	Description string
	Amount      float64
	Date        time.Time
	UserID      uuid.UUID
	GroupID     *uuid.UUID
}

// Service exposes the expense workflows.
type Service interface {
	Create(ctx context.Context, req CreateConsumptionRequest) (*Consumption, error)
	Get(ctx context.Context, id, actorID uuid.UUID) (*Consumption, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Consumption, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
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
	records    Repository
	membership GroupMembership
	now        func() time.Time
	id         IDGenerator
	logger     interfaces.Logger
}

// NewService constructs an expense service with the required dependencies.
func NewService(records Repository, membership GroupMembership, opts ...ServiceOption) Service {
	s := &service{
		records:    records,
		membership: membership,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateConsumptionRequest) (*Consumption, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Amount <= 0 {
		return nil, ErrAmountInvalid
	}

	if req.GroupID != nil {
		isMember, err := s.membership.IsMember(ctx, *req.GroupID, req.UserID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, groups.ErrNotMember
		}
	}

	date := req.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	created, err := s.records.Create(ctx, &Consumption{
		ID:          s.id(),
		Description: description,
		Amount:      req.Amount,
		Date:        date,
		UserID:      req.UserID,
		GroupID:     req.GroupID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("consumption recorded", "consumption_id", created.ID, "user_id", created.UserID)
	return created, nil
}

// Get returns one record when the actor owns it or belongs to the group it
// is shared with.
func (s *service) Get(ctx context.Context, id, actorID uuid.UUID) (*Consumption, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID == actorID {
		return record, nil
	}
	if record.GroupID != nil {
		isMember, err := s.membership.IsMember(ctx, *record.GroupID, actorID)
		if err != nil {
			return nil, err
		}
		if isMember {
			return record, nil
		}
	}
	return nil, ErrForbidden
}

// ListForUser returns the actor's own records plus every record shared
// with a group they belong to, newest date first.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Consumption, error) {
	memberOf, err := s.membership.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	groupIDs := make([]uuid.UUID, 0, len(memberOf))
	for _, group := range memberOf {
		groupIDs = append(groupIDs, group.ID)
	}
	return s.records.ListVisible(ctx, ListFilter{UserID: userID, GroupIDs: groupIDs})
}

func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.UserID != actorID {
		return ErrForbidden
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("consumption deleted", "consumption_id", id)
	return nil
}
