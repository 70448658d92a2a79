package components

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func newTestService(t *testing.T) (Service, *Store) {
	t.Helper()
	store := NewStore()
	return NewService(store), store
}

func mustCreate(t *testing.T, svc Service, req CreateComponentRequest) *Component {
	t.Helper()
	node, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return node
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateComponentRequest{Type: Type("video")})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError, got %T", err)
	}
	if typeErr.Type != Type("video") {
		t.Fatalf("expected type video in error, got %q", typeErr.Type)
	}
}

func TestCreateRejectsPayloadForWrongVariant(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name  string
		req   CreateComponentRequest
		field string
	}{
		{"content on image", CreateComponentRequest{Type: TypeImage, Content: strptr("hi")}, "content"},
		{"src on text", CreateComponentRequest{Type: TypeText, Src: strptr("/a.png")}, "src"},
		{"icon name on container", CreateComponentRequest{Type: TypeContainer, IconName: strptr("star")}, "iconName"},
		{"children on text", CreateComponentRequest{Type: TypeText, Children: []*Component{}}, "children"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if !errors.Is(err, ErrFieldMismatch) {
				t.Fatalf("expected ErrFieldMismatch, got %v", err)
			}
			var mismatch *FieldMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected FieldMismatchError, got %T", err)
			}
			if mismatch.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, mismatch.Field)
			}
		})
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)

	first := mustCreate(t, svc, CreateComponentRequest{Type: TypeText, Content: strptr("one")})
	second := mustCreate(t, svc, CreateComponentRequest{Type: TypeText, Content: strptr("two")})

	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both were %s", first.ID)
	}
}

func TestCreateContainerDefaultsChildren(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{Type: TypeRow})
	if node.Children == nil {
		t.Fatal("expected empty children slice, got nil")
	}
	if len(node.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(node.Children))
	}
}

func TestGetFindsNestedNodes(t *testing.T) {
	svc, store := newTestService(t)

	child := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "nested"}}
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{
			{ID: uuid.New(), Type: TypeColumn, Children: []*Component{child}},
		}},
	})

	got, err := svc.Get(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Text == nil || got.Text.Content != "nested" {
		t.Fatalf("expected nested text node, got %+v", got)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	id := uuid.New()
	_, err := svc.Get(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var notFound *ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %T", err)
	}
	if notFound.ID != id {
		t.Fatalf("expected id %s in error, got %s", id, notFound.ID)
	}
}

func TestFindPrefersEarlierSubtree(t *testing.T) {
	svc, store := newTestService(t)

	shared := uuid.New()
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{
			{ID: shared, Type: TypeText, Text: &TextProps{Content: "first"}},
		}},
		{ID: shared, Type: TypeText, Text: &TextProps{Content: "second"}},
	})

	got, err := svc.Get(context.Background(), shared)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Text.Content != "first" {
		t.Fatalf("expected the nested match from the first root, got %q", got.Text.Content)
	}
}

func TestUpdateMergesStyle(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{
		Type:    TypeText,
		Content: strptr("hello"),
		Style:   Style{"color": "red", "fontSize": "12px"},
	})

	updated, err := svc.Update(context.Background(), UpdateComponentRequest{
		ID:    node.ID,
		Style: Style{"color": "blue"},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Style["color"] != "blue" {
		t.Fatalf("expected patched color blue, got %v", updated.Style["color"])
	}
	if updated.Style["fontSize"] != "12px" {
		t.Fatalf("expected fontSize retained, got %v", updated.Style["fontSize"])
	}
	if updated.Text.Content != "hello" {
		t.Fatalf("expected content retained, got %q", updated.Text.Content)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{Type: TypeText, Content: strptr("hello")})
	req := UpdateComponentRequest{ID: node.ID, Content: strptr("patched")}

	first, err := svc.Update(context.Background(), req)
	if err != nil {
		t.Fatalf("first Update returned error: %v", err)
	}
	second, err := svc.Update(context.Background(), req)
	if err != nil {
		t.Fatalf("second Update returned error: %v", err)
	}
	if first.Text.Content != second.Text.Content {
		t.Fatalf("expected identical outcome, got %q then %q", first.Text.Content, second.Text.Content)
	}
}

func TestUpdateSwitchesVariant(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{Type: TypeText, Content: strptr("hello")})

	imageType := TypeImage
	updated, err := svc.Update(context.Background(), UpdateComponentRequest{
		ID:   node.ID,
		Type: &imageType,
		Src:  strptr("/banner.png"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Type != TypeImage {
		t.Fatalf("expected type image, got %q", updated.Type)
	}
	if updated.Text != nil {
		t.Fatal("expected text payload dropped after variant switch")
	}
	if updated.Image == nil || updated.Image.Src != "/banner.png" {
		t.Fatalf("expected image payload, got %+v", updated.Image)
	}
}

func TestUpdateRejectsPayloadForTargetVariant(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{Type: TypeText, Content: strptr("hello")})

	_, err := svc.Update(context.Background(), UpdateComponentRequest{
		ID:  node.ID,
		Src: strptr("/banner.png"),
	})
	if !errors.Is(err, ErrFieldMismatch) {
		t.Fatalf("expected ErrFieldMismatch, got %v", err)
	}
}

func TestUpdateReachesNestedNodes(t *testing.T) {
	svc, store := newTestService(t)

	child := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "before"}}
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{child}},
	})

	updated, err := svc.Update(context.Background(), UpdateComponentRequest{
		ID:      child.ID,
		Content: strptr("after"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Text.Content != "after" {
		t.Fatalf("expected patched content, got %q", updated.Text.Content)
	}

	got, err := svc.Get(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("Get after update returned error: %v", err)
	}
	if got.Text.Content != "after" {
		t.Fatalf("expected stored tree patched, got %q", got.Text.Content)
	}
}

func TestRemoveDropsSubtree(t *testing.T) {
	svc, store := newTestService(t)

	grandchild := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "leaf"}}
	child := &Component{ID: uuid.New(), Type: TypeColumn, Children: []*Component{grandchild}}
	sibling := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "stays"}}
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{child, sibling}},
	})

	if err := svc.Remove(context.Background(), child.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if _, err := svc.Get(context.Background(), child.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected removed node unreachable, got %v", err)
	}
	if _, err := svc.Get(context.Background(), grandchild.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected descendant unreachable after subtree removal, got %v", err)
	}
	if _, err := svc.Get(context.Background(), sibling.ID); err != nil {
		t.Fatalf("expected sibling untouched, got %v", err)
	}
}

func TestRemoveMissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Remove(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReturnsRootLevelOnly(t *testing.T) {
	svc, store := newTestService(t)

	nested := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "nested"}}
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{nested}},
		{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "root"}},
	})

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 root components, got %d", result.Total)
	}
}

func TestListByTypeSkipsNestedMatches(t *testing.T) {
	svc, store := newTestService(t)

	nested := &Component{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "nested"}}
	store.Reset([]*Component{
		{ID: uuid.New(), Type: TypeContainer, Children: []*Component{nested}},
		{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "root"}},
	})

	result, err := svc.ListByType(context.Background(), TypeText)
	if err != nil {
		t.Fatalf("ListByType returned error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected only the root-level text node, got %d", result.Total)
	}
	if result.Components[0].Text.Content != "root" {
		t.Fatalf("expected root-level node, got %q", result.Components[0].Text.Content)
	}
}

func TestListByTypeRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ListByType(context.Background(), Type("video")); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestResultsAreDetachedFromStore(t *testing.T) {
	svc, _ := newTestService(t)

	node := mustCreate(t, svc, CreateComponentRequest{
		Type:  TypeText,
		Style: Style{"color": "red"},
	})
	node.Style["color"] = "green"

	got, err := svc.Get(context.Background(), node.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Style["color"] != "red" {
		t.Fatalf("expected stored style untouched, got %v", got.Style["color"])
	}
}

func TestComponentJSONRoundTrip(t *testing.T) {
	alt := "Hero banner"
	size := 24
	tree := []*Component{
		{
			ID:    uuid.New(),
			Type:  TypeContainer,
			Style: Style{"padding": "24px"},
			Children: []*Component{
				{ID: uuid.New(), Type: TypeText, Text: &TextProps{Content: "hello"}},
				{ID: uuid.New(), Type: TypeImage, Image: &ImageProps{Src: "/hero.png", Alt: &alt}},
				{ID: uuid.New(), Type: TypeIcon, Icon: &IconProps{Name: "star", Size: &size}},
			},
		},
	}

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded []*Component
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(decoded) != 1 || len(decoded[0].Children) != 3 {
		t.Fatalf("expected tree shape preserved, got %+v", decoded)
	}
	if decoded[0].Children[0].Text.Content != "hello" {
		t.Fatalf("expected text payload preserved, got %+v", decoded[0].Children[0])
	}
	if decoded[0].Children[1].Image.Alt == nil || *decoded[0].Children[1].Image.Alt != alt {
		t.Fatalf("expected alt preserved, got %+v", decoded[0].Children[1].Image)
	}
	if decoded[0].Children[2].Icon.Size == nil || *decoded[0].Children[2].Icon.Size != size {
		t.Fatalf("expected icon size preserved, got %+v", decoded[0].Children[2].Icon)
	}
}

func TestComponentJSONContainerAlwaysCarriesChildren(t *testing.T) {
	node := &Component{ID: uuid.New(), Type: TypeRow}

	data, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	children, ok := raw["children"]
	if !ok {
		t.Fatal("expected children key on container variants")
	}
	if list, ok := children.([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty children list, got %v", children)
	}
}

func TestComponentJSONRejectsUnknownType(t *testing.T) {
	payload := []byte(`{"id":"` + uuid.NewString() + `","type":"video"}`)

	var node Component
	if err := json.Unmarshal(payload, &node); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestSeedPopulatesStore(t *testing.T) {
	store := NewStore()
	Seed(store)

	roots := store.Roots()
	if len(roots) == 0 {
		t.Fatal("expected seeded roots")
	}
	for _, root := range roots {
		if !root.Type.IsContainer() {
			t.Fatalf("expected container roots from seed, got %q", root.Type)
		}
	}
}
