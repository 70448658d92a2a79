package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/components"
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *MemoryPageRepository) {
	t.Helper()
	repo := NewMemoryPageRepository()
	svc := NewService(repo, WithClock(func() time.Time { return testClock }))
	return svc, repo
}

func textNode(content string) *components.Component {
	return &components.Component{
		ID:   uuid.New(),
		Type: components.TypeText,
		Text: &components.TextProps{Content: content},
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreatePageRequest{Title: "   "})
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{Title: "My Landing Page"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Slug != "my-landing-page" {
		t.Fatalf("expected derived slug, got %q", page.Slug)
	}
}

func TestCreateNormalizesRequestedSlug(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{
		Title: "Landing",
		Slug:  "Custom Slug Here",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Slug != "custom-slug-here" {
		t.Fatalf("expected normalized slug, got %q", page.Slug)
	}
}

func TestCreateStampsMetadata(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{
		Title:    "Landing",
		Metadata: map[string]any{"description": "marketing page"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	want := testClock.Format(time.RFC3339)
	if page.Metadata["createdAt"] != want {
		t.Fatalf("expected createdAt %q, got %v", want, page.Metadata["createdAt"])
	}
	if page.Metadata["updatedAt"] != want {
		t.Fatalf("expected updatedAt %q, got %v", want, page.Metadata["updatedAt"])
	}
	if page.Metadata["description"] != "marketing page" {
		t.Fatalf("expected caller metadata kept, got %v", page.Metadata)
	}
}

func TestCreateRejectsInvalidSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	bad := textNode("hello")
	bad.Style = components.Style{"padding": true}

	_, err := svc.Create(context.Background(), CreatePageRequest{
		Title:      "Landing",
		Components: []*components.Component{bad},
	})
	if !errors.Is(err, ErrInvalidTree) {
		t.Fatalf("expected ErrInvalidTree, got %v", err)
	}
}

func TestCreateAllowsDuplicateSlugs(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"}); err != nil {
		t.Fatalf("expected duplicate slug accepted, got %v", err)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var notFound *PageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PageNotFoundError, got %T", err)
	}
}

func TestGetBySlugFindsPage(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.GetBySlug(context.Background(), "landing")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected page %s, got %s", created.ID, got.ID)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	repo := NewMemoryPageRepository()
	now := testClock
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	svc := NewService(repo, WithClock(clock))

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := svc.Create(context.Background(), CreatePageRequest{Title: title}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	result, err := svc.List(context.Background(), ListPagesRequest{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Total)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(result.Pages))
	}
	if result.Pages[0].Title != "Third" {
		t.Fatalf("expected newest first, got %q", result.Pages[0].Title)
	}

	second, err := svc.List(context.Background(), ListPagesRequest{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List page 2 returned error: %v", err)
	}
	if len(second.Pages) != 1 || second.Pages[0].Title != "First" {
		t.Fatalf("expected oldest page last, got %+v", second.Pages)
	}
}

func TestListDefaultsPagination(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.List(context.Background(), ListPagesRequest{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Page != 1 || result.Limit != DefaultPageSize {
		t.Fatalf("expected defaults 1/%d, got %d/%d", DefaultPageSize, result.Page, result.Limit)
	}
}

func TestListFiltersByOwner(t *testing.T) {
	svc, _ := newTestService(t)

	owner := uuid.New()
	other := uuid.New()
	if _, err := svc.Create(context.Background(), CreatePageRequest{Title: "Mine", UserID: &owner}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreatePageRequest{Title: "Theirs", UserID: &other}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := svc.List(context.Background(), ListPagesRequest{UserID: &owner})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 1 || result.Pages[0].Title != "Mine" {
		t.Fatalf("expected only owner pages, got %+v", result.Pages)
	}
}

func TestUpdateMergesMetadataAndRefreshesStamp(t *testing.T) {
	repo := NewMemoryPageRepository()
	current := testClock
	svc := NewService(repo, WithClock(func() time.Time { return current }))

	page, err := svc.Create(context.Background(), CreatePageRequest{
		Title:    "Landing",
		Metadata: map[string]any{"description": "v1", "author": "dana"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	current = testClock.Add(time.Hour)
	updated, err := svc.Update(context.Background(), UpdatePageRequest{
		ID:       page.ID,
		Metadata: map[string]any{"description": "v2"},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Metadata["description"] != "v2" {
		t.Fatalf("expected patched description, got %v", updated.Metadata["description"])
	}
	if updated.Metadata["author"] != "dana" {
		t.Fatalf("expected author retained, got %v", updated.Metadata["author"])
	}
	if updated.Metadata["createdAt"] != testClock.Format(time.RFC3339) {
		t.Fatalf("expected createdAt untouched, got %v", updated.Metadata["createdAt"])
	}
	if updated.Metadata["updatedAt"] != current.Format(time.RFC3339) {
		t.Fatalf("expected updatedAt refreshed, got %v", updated.Metadata["updatedAt"])
	}
}

func TestUpdateReplacesSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{
		Title:      "Landing",
		Components: []*components.Component{textNode("before")},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdatePageRequest{
		ID:         page.ID,
		Components: []*components.Component{textNode("after"), textNode("extra")},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Components) != 2 {
		t.Fatalf("expected snapshot replaced, got %d nodes", len(updated.Components))
	}
}

func TestUpdateKeepsUnpatchedFields(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	published := true
	updated, err := svc.Update(context.Background(), UpdatePageRequest{
		ID:          page.ID,
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Landing" || updated.Slug != "landing" {
		t.Fatalf("expected title and slug retained, got %q/%q", updated.Title, updated.Slug)
	}
	if !updated.IsPublished {
		t.Fatal("expected page published")
	}
}

func TestPublishAndUnpublish(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	published, err := svc.Publish(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("expected page published")
	}

	unpublished, err := svc.Unpublish(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("Unpublish returned error: %v", err)
	}
	if unpublished.IsPublished {
		t.Fatal("expected page unpublished")
	}
}

func TestDeleteRemovesPage(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.Create(context.Background(), CreatePageRequest{Title: "Landing"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), page.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
