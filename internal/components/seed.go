package components

import "github.com/google/uuid"

func strptr(v string) *string { return &v }

func intptr(v int) *int { return &v }

// Seed loads a small starter tree into the store so a fresh instance has
// something to render in the editor.
func Seed(store *Store) {
	heading := &Component{
		ID:   uuid.New(),
		Type: TypeText,
		Text: &TextProps{Content: "Welcome to your new page"},
		Style: Style{
			"fontSize":   "32px",
			"fontWeight": "bold",
		},
	}
	tagline := &Component{
		ID:   uuid.New(),
		Type: TypeText,
		Text: &TextProps{Content: "Drag components here to get started"},
		Style: Style{
			"fontSize": "16px",
			"color":    "#666666",
		},
	}
	hero := &Component{
		ID:    uuid.New(),
		Type:  TypeImage,
		Image: &ImageProps{Src: "/assets/hero.png", Alt: strptr("Hero banner")},
	}
	star := &Component{
		ID:   uuid.New(),
		Type: TypeIcon,
		Icon: &IconProps{Name: "star", Size: intptr(24), Color: strptr("#f5a623")},
	}

	store.Reset([]*Component{
		{
			ID:   uuid.New(),
			Type: TypeContainer,
			Style: Style{
				"padding": "24px",
			},
			Children: []*Component{heading, tagline},
		},
		{
			ID:       uuid.New(),
			Type:     TypeRow,
			Children: []*Component{hero, star},
		},
	})
}
