package components

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates the component variants a page tree can hold.
type Type string

const (
	TypeText      Type = "text"
	TypeImage     Type = "image"
	TypeIcon      Type = "icon"
	TypeContainer Type = "container"
	TypeRow       Type = "row"
	TypeColumn    Type = "column"
)

// Types lists every known component variant in declaration order.
func Types() []Type {
	return []Type{TypeText, TypeImage, TypeIcon, TypeContainer, TypeRow, TypeColumn}
}

// Valid reports whether the type is one of the known variants.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeIcon, TypeContainer, TypeRow, TypeColumn:
		return true
	}
	return false
}

// IsContainer reports whether the variant carries a children list.
func (t Type) IsContainer() bool {
	switch t {
	case TypeContainer, TypeRow, TypeColumn:
		return true
	}
	return false
}

// Style holds CSS-ish presentation attributes. Values are strings or numbers
// as supplied by the editor; keys are camel-cased property names.
type Style map[string]any

// Clone performs a shallow copy of the style map.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge overlays patch on top of the receiver, returning a new map. Keys
// present in patch win; unspecified keys are retained.
func (s Style) Merge(patch Style) Style {
	if len(patch) == 0 {
		return s.Clone()
	}
	out := make(Style, len(s)+len(patch))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Position places a component on the canvas.
type Position struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	ZIndex *int     `json:"zIndex,omitempty"`
}

// TextProps is the payload carried by text components.
type TextProps struct {
	Content string
}

// ImageProps is the payload carried by image components.
type ImageProps struct {
	Src string
	Alt *string
}

// IconProps is the payload carried by icon components.
type IconProps struct {
	Name  string
	Size  *int
	Color *string
}

// Component is one node of a page tree. Exactly one variant payload is
// populated, matching Type; container variants carry Children instead.
// The zero value is not usable; build nodes through the service.
type Component struct {
	ID       uuid.UUID
	Type     Type
	Style    Style
	Position *Position

	Text  *TextProps
	Image *ImageProps
	Icon  *IconProps

	// Children is non-nil (possibly empty) for container variants and nil
	// for every other variant.
	Children []*Component
}

// Clone deep-copies the node and its subtree.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	out.Style = c.Style.Clone()
	if c.Position != nil {
		pos := *c.Position
		out.Position = &pos
	}
	if c.Text != nil {
		text := *c.Text
		out.Text = &text
	}
	if c.Image != nil {
		img := *c.Image
		out.Image = &img
	}
	if c.Icon != nil {
		icon := *c.Icon
		out.Icon = &icon
	}
	if c.Children != nil {
		out.Children = CloneTree(c.Children)
	}
	return &out
}

// CloneTree deep-copies a component list.
func CloneTree(list []*Component) []*Component {
	if list == nil {
		return nil
	}
	out := make([]*Component, len(list))
	for i, node := range list {
		out[i] = node.Clone()
	}
	return out
}

// componentJSON is the flat wire shape shared with the editor frontend.
type componentJSON struct {
	ID       string       `json:"id"`
	Type     Type         `json:"type"`
	Content  *string      `json:"content,omitempty"`
	Src      *string      `json:"src,omitempty"`
	Alt      *string      `json:"alt,omitempty"`
	IconName *string      `json:"iconName,omitempty"`
	Size     *int         `json:"size,omitempty"`
	Color    *string      `json:"color,omitempty"`
	Style    Style        `json:"style,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Children []*Component `json:"children,omitempty"`
}

// MarshalJSON flattens the variant payload into the editor wire format.
func (c *Component) MarshalJSON() ([]byte, error) {
	wire := componentJSON{
		ID:       c.ID.String(),
		Type:     c.Type,
		Style:    c.Style,
		Position: c.Position,
	}
	switch {
	case c.Text != nil:
		wire.Content = &c.Text.Content
	case c.Image != nil:
		wire.Src = &c.Image.Src
		wire.Alt = c.Image.Alt
	case c.Icon != nil:
		wire.IconName = &c.Icon.Name
		wire.Size = c.Icon.Size
		wire.Color = c.Icon.Color
	}
	if c.Type.IsContainer() {
		children := c.Children
		if children == nil {
			children = []*Component{}
		}
		return json.Marshal(struct {
			componentJSON
			Children []*Component `json:"children"`
		}{componentJSON: wire, Children: children})
	}
	return json.Marshal(wire)
}

// UnmarshalJSON rebuilds the variant payload from the flat wire format.
// Fields that do not belong to the declared type are dropped, matching how
// persisted trees from older editors are tolerated on read.
func (c *Component) UnmarshalJSON(data []byte) error {
	var wire componentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if !wire.Type.Valid() {
		return fmt.Errorf("components: decode: %w", &TypeError{Type: wire.Type})
	}

	id, err := uuid.Parse(wire.ID)
	if err != nil {
		return fmt.Errorf("components: decode id %q: %w", wire.ID, err)
	}

	node := Component{
		ID:       id,
		Type:     wire.Type,
		Style:    wire.Style,
		Position: wire.Position,
	}
	switch wire.Type {
	case TypeText:
		content := ""
		if wire.Content != nil {
			content = *wire.Content
		}
		node.Text = &TextProps{Content: content}
	case TypeImage:
		src := ""
		if wire.Src != nil {
			src = *wire.Src
		}
		node.Image = &ImageProps{Src: src, Alt: wire.Alt}
	case TypeIcon:
		name := ""
		if wire.IconName != nil {
			name = *wire.IconName
		}
		node.Icon = &IconProps{Name: name, Size: wire.Size, Color: wire.Color}
	default:
		node.Children = wire.Children
		if node.Children == nil {
			node.Children = []*Component{}
		}
	}

	*c = node
	return nil
}

// TreeSchema documents the JSON shape accepted for persisted component
// trees. Page writes validate their snapshot against it.
var TreeSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"$ref": "#/$defs/component"},
	"$defs": map[string]any{
		"component": map[string]any{
			"type":     "object",
			"required": []string{"id", "type"},
			"properties": map[string]any{
				"id":       map[string]any{"type": "string"},
				"type":     map[string]any{"enum": []string{"text", "image", "icon", "container", "row", "column"}},
				"content":  map[string]any{"type": "string"},
				"src":      map[string]any{"type": "string"},
				"alt":      map[string]any{"type": "string"},
				"iconName": map[string]any{"type": "string"},
				"size":     map[string]any{"type": "number"},
				"color":    map[string]any{"type": "string"},
				"style": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type": []string{"string", "number"},
					},
				},
				"position": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"x":      map[string]any{"type": "number"},
						"y":      map[string]any{"type": "number"},
						"zIndex": map[string]any{"type": "integer"},
					},
				},
				"children": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/component"},
				},
			},
		},
	},
}
