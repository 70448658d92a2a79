package components

import (
	"context"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

// IDGenerator produces identifiers for new components.
type IDGenerator func() uuid.UUID

// CreateComponentRequest carries the editor payload for a new root-level
// component. Variant payload fields that do not belong to Type are
// rejected.
type CreateComponentRequest struct {
	Type     Type
	Style    Style
	Position *Position

	Content  *string
	Src      *string
	Alt      *string
	IconName *string
	Size     *int
	Color    *string

	Children []*Component
}

// UpdateComponentRequest patches a component anywhere in the tree. Nil
// fields keep their current value; Type switches the variant, with each
// payload field of the new variant falling back to the old value when the
// patch omits it.
type UpdateComponentRequest struct {
	ID   uuid.UUID
	Type *Type

	Style    Style
	Position *Position

	Content  *string
	Src      *string
	Alt      *string
	IconName *string
	Size     *int
	Color    *string

	Children []*Component
}

// ListResult pairs root-level components with their count.
type ListResult struct {
	Components []*Component
	Total      int
}

// Service manages the shared component tree.
type Service interface {
	Create(ctx context.Context, req CreateComponentRequest) (*Component, error)
	Get(ctx context.Context, id uuid.UUID) (*Component, error)
	Update(ctx context.Context, req UpdateComponentRequest) (*Component, error)
	Remove(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) (*ListResult, error)
	ListByType(ctx context.Context, t Type) (*ListResult, error)
	Types(ctx context.Context) []Type
}

type service struct {
	store  *Store
	newID  IDGenerator
	logger interfaces.Logger
}

// Option configures the component service.
type Option func(*service)

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires a component service around the given store.
func NewService(store *Store, opts ...Option) Service {
	svc := &service{
		store:  store,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) Create(ctx context.Context, req CreateComponentRequest) (*Component, error) {
	if !req.Type.Valid() {
		return nil, &TypeError{Type: req.Type}
	}
	if err := checkPayload(req.Type, req.Content, req.Src, req.Alt, req.IconName, req.Size, req.Color, req.Children); err != nil {
		return nil, err
	}

	node := &Component{
		ID:       s.newID(),
		Type:     req.Type,
		Style:    req.Style.Clone(),
		Position: clonePosition(req.Position),
	}
	switch req.Type {
	case TypeText:
		node.Text = &TextProps{Content: deref(req.Content)}
	case TypeImage:
		node.Image = &ImageProps{Src: deref(req.Src), Alt: cloneString(req.Alt)}
	case TypeIcon:
		node.Icon = &IconProps{Name: deref(req.IconName), Size: cloneInt(req.Size), Color: cloneString(req.Color)}
	default:
		node.Children = CloneTree(req.Children)
		if node.Children == nil {
			node.Children = []*Component{}
		}
	}

	s.store.Insert(node)
	s.logger.Debug("component created", "component_id", node.ID, "type", node.Type)
	return node.Clone(), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Component, error) {
	node, ok := s.store.FindByID(id.String())
	if !ok {
		return nil, &ComponentNotFoundError{ID: id}
	}
	return node, nil
}

func (s *service) Update(ctx context.Context, req UpdateComponentRequest) (*Component, error) {
	current, ok := s.store.FindByID(req.ID.String())
	if !ok {
		return nil, &ComponentNotFoundError{ID: req.ID}
	}

	nextType := current.Type
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, &TypeError{Type: *req.Type}
		}
		nextType = *req.Type
	}
	if err := checkPayload(nextType, req.Content, req.Src, req.Alt, req.IconName, req.Size, req.Color, req.Children); err != nil {
		return nil, err
	}

	merged := &Component{
		ID:       current.ID,
		Type:     nextType,
		Style:    current.Style.Merge(req.Style),
		Position: current.Position,
	}
	if req.Position != nil {
		merged.Position = clonePosition(req.Position)
	}

	// Each payload field of the target variant falls back to the stored
	// value independently when the patch omits it.
	switch nextType {
	case TypeText:
		content := ""
		if current.Text != nil {
			content = current.Text.Content
		}
		if req.Content != nil {
			content = *req.Content
		}
		merged.Text = &TextProps{Content: content}
	case TypeImage:
		img := ImageProps{}
		if current.Image != nil {
			img = *current.Image
		}
		if req.Src != nil {
			img.Src = *req.Src
		}
		if req.Alt != nil {
			img.Alt = cloneString(req.Alt)
		}
		merged.Image = &img
	case TypeIcon:
		icon := IconProps{}
		if current.Icon != nil {
			icon = *current.Icon
		}
		if req.IconName != nil {
			icon.Name = *req.IconName
		}
		if req.Size != nil {
			icon.Size = cloneInt(req.Size)
		}
		if req.Color != nil {
			icon.Color = cloneString(req.Color)
		}
		merged.Icon = &icon
	default:
		children := current.Children
		if req.Children != nil {
			children = req.Children
		}
		merged.Children = CloneTree(children)
		if merged.Children == nil {
			merged.Children = []*Component{}
		}
	}

	if !s.store.Replace(req.ID.String(), merged) {
		return nil, &ComponentNotFoundError{ID: req.ID}
	}
	s.logger.Debug("component updated", "component_id", req.ID, "type", merged.Type)
	return merged.Clone(), nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if !s.store.Remove(id.String()) {
		return &ComponentNotFoundError{ID: id}
	}
	s.logger.Debug("component removed", "component_id", id)
	return nil
}

func (s *service) List(ctx context.Context) (*ListResult, error) {
	roots := s.store.Roots()
	return &ListResult{Components: roots, Total: len(roots)}, nil
}

func (s *service) ListByType(ctx context.Context, t Type) (*ListResult, error) {
	if !t.Valid() {
		return nil, &TypeError{Type: t}
	}
	matches := s.store.RootsByType(t)
	if matches == nil {
		matches = []*Component{}
	}
	return &ListResult{Components: matches, Total: len(matches)}, nil
}

func (s *service) Types(ctx context.Context) []Type {
	return Types()
}

// checkPayload rejects payload fields that do not belong to the variant.
func checkPayload(t Type, content, src, alt, iconName *string, size *int, color *string, children []*Component) error {
	if content != nil && t != TypeText {
		return &FieldMismatchError{Type: t, Field: "content"}
	}
	if t != TypeImage {
		if src != nil {
			return &FieldMismatchError{Type: t, Field: "src"}
		}
		if alt != nil {
			return &FieldMismatchError{Type: t, Field: "alt"}
		}
	}
	if t != TypeIcon {
		if iconName != nil {
			return &FieldMismatchError{Type: t, Field: "iconName"}
		}
		if size != nil {
			return &FieldMismatchError{Type: t, Field: "size"}
		}
		if color != nil {
			return &FieldMismatchError{Type: t, Field: "color"}
		}
	}
	if children != nil && !t.IsContainer() {
		return &FieldMismatchError{Type: t, Field: "children"}
	}
	return nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func clonePosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	out := Position{}
	if p.X != nil {
		x := *p.X
		out.X = &x
	}
	if p.Y != nil {
		y := *p.Y
		out.Y = &y
	}
	if p.ZIndex != nil {
		z := *p.ZIndex
		out.ZIndex = &z
	}
	return &out
}
