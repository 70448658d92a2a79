package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slugpkg "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/internal/validation"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// DefaultPageSize bounds listings when the caller does not pick a limit.
const DefaultPageSize = 10

// CreatePageRequest carries the payload for a new page.
type CreatePageRequest struct {
	Title       string
	Slug        string
	Components  []*components.Component
	Metadata    map[string]any
	IsPublished bool
	UserID      *uuid.UUID
}

// UpdatePageRequest patches a page. Nil fields keep their current value;
// Metadata keys are merged over the stored map.
type UpdatePageRequest struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	Components  []*components.Component
	Metadata    map[string]any
	IsPublished *bool
}

// ListPagesRequest selects a page of results. Page is 1-indexed.
type ListPagesRequest struct {
	Page      int
	Limit     int
	UserID    *uuid.UUID
	Published *bool
}

// ListResult carries one page of results plus the overall match count.
type ListResult struct {
	Pages []*Page
	Total int
	Page  int
	Limit int
}

// Service exposes the page workflows.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context, req ListPagesRequest) (*ListResult, error)
	Update(ctx context.Context, req UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) (*Page, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*Page, error)
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
	pages  Repository
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a page service with the required dependencies.
func NewService(pages Repository, opts ...ServiceOption) Service {
	s := &service{
		pages:  pages,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	pageSlug, err := resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	tree := req.Components
	if tree == nil {
		tree = []*components.Component{}
	}
	if err := validateTree(tree); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	metadata := mergeMetadata(nil, req.Metadata)
	metadata["createdAt"] = now.Format(time.RFC3339)
	metadata["updatedAt"] = now.Format(time.RFC3339)

	record := &Page{
		ID:          s.id(),
		Title:       title,
		Slug:        pageSlug,
		Components:  components.CloneTree(tree),
		Metadata:    metadata,
		IsPublished: req.IsPublished,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page created", "page_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.pages.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	return s.pages.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) List(ctx context.Context, req ListPagesRequest) (*ListResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	records, total, err := s.pages.List(ctx, ListFilter{
		UserID:    req.UserID,
		Published: req.Published,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Pages: records, Total: total, Page: page, Limit: limit}, nil
}

func (s *service) Update(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	current, err := s.pages.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		current.Title = title
	}
	if req.Slug != nil {
		pageSlug, err := resolveSlug(*req.Slug, current.Title)
		if err != nil {
			return nil, err
		}
		current.Slug = pageSlug
	}
	if req.Components != nil {
		if err := validateTree(req.Components); err != nil {
			return nil, err
		}
		current.Components = components.CloneTree(req.Components)
	}
	if req.IsPublished != nil {
		current.IsPublished = *req.IsPublished
	}

	now := s.now().UTC()
	current.Metadata = mergeMetadata(current.Metadata, req.Metadata)
	current.Metadata["updatedAt"] = now.Format(time.RFC3339)
	current.UpdatedAt = now

	updated, err := s.pages.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page updated", "page_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pages.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page deleted", "page_id", id)
	return nil
}

func (s *service) Publish(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.setPublished(ctx, id, true)
}

func (s *service) Unpublish(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.setPublished(ctx, id, false)
}

func (s *service) setPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error) {
	current, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	current.IsPublished = published
	current.Metadata = mergeMetadata(current.Metadata, nil)
	current.Metadata["updatedAt"] = now.Format(time.RFC3339)
	current.UpdatedAt = now

	updated, err := s.pages.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page publish state changed", "page_id", id, "published", published)
	return updated, nil
}

// resolveSlug normalizes the requested slug, deriving one from the title
// when the request leaves it blank. Slugs are not unique across pages; a
// slug lookup resolves to the newest match.
func resolveSlug(requested, title string) (string, error) {
	source := strings.TrimSpace(requested)
	if source == "" {
		source = title
	}
	normalized, err := slugpkg.Normalize(source)
	if err != nil || normalized == "" {
		return "", errors.Join(ErrSlugInvalid, err)
	}
	return normalized, nil
}

func validateTree(tree []*components.Component) error {
	if err := validation.ValidateDocument(components.TreeSchema, tree); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	return nil
}

func mergeMetadata(current, patch map[string]any) map[string]any {
	out := make(map[string]any, len(current)+len(patch))
	for k, v := range current {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}
