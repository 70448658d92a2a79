package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/consumption"
	"github.com/monospace/pagebuilder/internal/groups"
	"github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/internal/pages"
	"github.com/monospace/pagebuilder/internal/storage"
	"github.com/monospace/pagebuilder/internal/users"
)

type apiFixture struct {
	mux     *http.ServeMux
	users   *users.MemoryUserRepository
	storage *storage.MemoryStorage
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()

	userRepo := users.NewMemoryUserRepository()
	store := storage.NewMemoryStorage()

	componentSvc := components.NewService(components.NewStore())
	pageSvc := pages.NewService(pages.NewMemoryPageRepository())
	imageSvc := images.NewService(images.NewMemoryImageRepository(), store)
	groupSvc := groups.NewService(groups.NewMemoryGroupRepository(), userRepo)
	consumptionSvc := consumption.NewService(consumption.NewMemoryConsumptionRepository(), groupSvc)

	api := NewAPI(
		WithComponentService(componentSvc),
		WithPageService(pageSvc),
		WithImageService(imageSvc),
		WithGroupService(groupSvc),
		WithConsumptionService(consumptionSvc),
	)
	mux := http.NewServeMux()
	api.Register(mux)
	return &apiFixture{mux: mux, users: userRepo, storage: store}
}

func (f *apiFixture) seedUser(t *testing.T, email string) *users.User {
	t.Helper()
	record, err := f.users.Create(context.Background(), &users.User{Email: email, Name: email})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return record
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, actor *uuid.UUID, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("X-User-ID", actor.String())
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAPI_ComponentLifecycle(t *testing.T) {
	f := setupAPI(t)

	createResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/components", nil, map[string]any{
		"type":    "text",
		"content": "Welcome",
		"style":   map[string]any{"color": "#333"},
	}, http.StatusCreated)

	var created components.Component
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil {
		t.Fatalf("expected created component id")
	}
	if created.Text == nil || created.Text.Content != "Welcome" {
		t.Fatalf("expected text payload, got %+v", created)
	}

	getPath := "/api/components/" + created.ID.String()
	getResp := doJSONRequest(t, f.mux, http.MethodGet, getPath, nil, nil, http.StatusOK)
	var fetched components.Component
	decodeJSONBody(t, getResp, &fetched)
	if fetched.ID != created.ID {
		t.Fatalf("expected fetched id %s got %s", created.ID, fetched.ID)
	}

	updateResp := doJSONRequest(t, f.mux, http.MethodPatch, getPath, nil, map[string]any{
		"content": "Updated",
	}, http.StatusOK)
	var updated components.Component
	decodeJSONBody(t, updateResp, &updated)
	if updated.Text == nil || updated.Text.Content != "Updated" {
		t.Fatalf("expected updated content, got %+v", updated)
	}

	listResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/components", nil, nil, http.StatusOK)
	var listed []*components.Component
	decodeJSONBody(t, listResp, &listed)
	if len(listed) != 1 {
		t.Fatalf("expected 1 root component got %d", len(listed))
	}

	typedResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/components/type/text", nil, nil, http.StatusOK)
	var typed []*components.Component
	decodeJSONBody(t, typedResp, &typed)
	if len(typed) != 1 {
		t.Fatalf("expected 1 text component got %d", len(typed))
	}

	doJSONRequest(t, f.mux, http.MethodDelete, getPath, nil, nil, http.StatusNoContent)
	doJSONRequest(t, f.mux, http.MethodGet, getPath, nil, nil, http.StatusNotFound)
}

func TestAPI_ComponentCreateRejectsUnknownType(t *testing.T) {
	f := setupAPI(t)

	resp := doJSONRequest(t, f.mux, http.MethodPost, "/api/components", nil, map[string]any{
		"type": "carousel",
	}, http.StatusBadRequest)

	var payload errorResponse
	decodeJSONBody(t, resp, &payload)
	if payload.Message == "" {
		t.Fatalf("expected error message in response")
	}
}

func TestAPI_ComponentCreateRejectsForeignPayload(t *testing.T) {
	f := setupAPI(t)

	doJSONRequest(t, f.mux, http.MethodPost, "/api/components", nil, map[string]any{
		"type": "text",
		"src":  "https://cdn.example.com/a.png",
	}, http.StatusBadRequest)
}

func TestAPI_ComponentTypes(t *testing.T) {
	f := setupAPI(t)

	resp := doJSONRequest(t, f.mux, http.MethodGet, "/api/components/types", nil, nil, http.StatusOK)
	var types []string
	decodeJSONBody(t, resp, &types)
	if len(types) == 0 {
		t.Fatalf("expected type catalogue")
	}
}

func TestAPI_PageLifecycle(t *testing.T) {
	f := setupAPI(t)

	createResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/pages", nil, map[string]any{
		"title": "My Landing Page",
	}, http.StatusCreated)

	var created pages.Page
	decodeJSONBody(t, createResp, &created)
	if created.Slug != "my-landing-page" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}

	slugResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/pages/slug/my-landing-page", nil, nil, http.StatusOK)
	var bySlug pages.Page
	decodeJSONBody(t, slugResp, &bySlug)
	if bySlug.ID != created.ID {
		t.Fatalf("expected page %s by slug, got %s", created.ID, bySlug.ID)
	}

	idPath := "/api/pages/" + created.ID.String()
	publishResp := doJSONRequest(t, f.mux, http.MethodPost, idPath+"/publish", nil, nil, http.StatusOK)
	var published pages.Page
	decodeJSONBody(t, publishResp, &published)
	if !published.IsPublished {
		t.Fatalf("expected page to be published")
	}

	listResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/pages?published=true", nil, nil, http.StatusOK)
	var listed pageListResponse
	decodeJSONBody(t, listResp, &listed)
	if listed.Total != 1 {
		t.Fatalf("expected 1 published page got %d", listed.Total)
	}

	doJSONRequest(t, f.mux, http.MethodDelete, idPath, nil, nil, http.StatusNoContent)
	doJSONRequest(t, f.mux, http.MethodGet, idPath, nil, nil, http.StatusNotFound)
}

func TestAPI_PageCreateRejectsInvalidSnapshot(t *testing.T) {
	f := setupAPI(t)

	resp := doJSONRequest(t, f.mux, http.MethodPost, "/api/pages", nil, map[string]any{
		"title": "Broken",
		"components": []map[string]any{
			{"id": uuid.NewString(), "type": "text", "content": "hi", "style": map[string]any{"padding": true}},
		},
	}, http.StatusUnprocessableEntity)

	var payload errorResponse
	decodeJSONBody(t, resp, &payload)
	if len(payload.Issues) == 0 {
		t.Fatalf("expected validation issues in response")
	}
}

func TestAPI_PageCreateRequiresTitle(t *testing.T) {
	f := setupAPI(t)

	doJSONRequest(t, f.mux, http.MethodPost, "/api/pages", nil, map[string]any{
		"title": "   ",
	}, http.StatusBadRequest)
}

func TestAPI_GroupsRequireActor(t *testing.T) {
	f := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without actor header, got %d", rec.Code)
	}
}

func TestAPI_GroupFlow(t *testing.T) {
	f := setupAPI(t)
	owner := f.seedUser(t, "owner@example.com")
	invitee := f.seedUser(t, "invitee@example.com")
	outsider := f.seedUser(t, "outsider@example.com")

	createResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/groups", &owner.ID, map[string]any{
		"name": "Trip",
	}, http.StatusCreated)
	var group groups.Group
	decodeJSONBody(t, createResp, &group)
	if group.ID == uuid.Nil {
		t.Fatalf("expected group id")
	}

	invitePath := "/api/groups/" + group.ID.String() + "/invite"
	doJSONRequest(t, f.mux, http.MethodPost, invitePath, &owner.ID, map[string]any{"email": invitee.Email}, http.StatusCreated)
	doJSONRequest(t, f.mux, http.MethodPost, invitePath, &owner.ID, map[string]any{"email": "nobody@example.com"}, http.StatusNotFound)
	doJSONRequest(t, f.mux, http.MethodPost, invitePath, &owner.ID, map[string]any{"email": invitee.Email}, http.StatusConflict)
	doJSONRequest(t, f.mux, http.MethodPost, invitePath, &outsider.ID, map[string]any{"email": outsider.Email}, http.StatusForbidden)

	listResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/groups", &invitee.ID, nil, http.StatusOK)
	var mine []*groups.Group
	decodeJSONBody(t, listResp, &mine)
	if len(mine) != 1 {
		t.Fatalf("expected invitee to see 1 group, got %d", len(mine))
	}

	groupPath := "/api/groups/" + group.ID.String()
	detailResp := doJSONRequest(t, f.mux, http.MethodGet, groupPath, &invitee.ID, nil, http.StatusOK)
	var detail groups.Group
	decodeJSONBody(t, detailResp, &detail)
	if len(detail.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(detail.Members))
	}
	doJSONRequest(t, f.mux, http.MethodGet, groupPath, &outsider.ID, nil, http.StatusForbidden)

	messagesPath := "/api/groups/" + group.ID.String() + "/messages"
	doJSONRequest(t, f.mux, http.MethodPost, messagesPath, &owner.ID, map[string]any{}, http.StatusBadRequest)
	doJSONRequest(t, f.mux, http.MethodPost, messagesPath, &owner.ID, map[string]any{"content": "hello"}, http.StatusCreated)
	doJSONRequest(t, f.mux, http.MethodGet, messagesPath, &outsider.ID, nil, http.StatusForbidden)

	historyResp := doJSONRequest(t, f.mux, http.MethodGet, messagesPath, &invitee.ID, nil, http.StatusOK)
	var history []*groups.Message
	decodeJSONBody(t, historyResp, &history)
	if len(history) != 1 || history[0].Content != "hello" {
		t.Fatalf("unexpected message history: %+v", history)
	}
}

func TestAPI_GroupExpenseMessage(t *testing.T) {
	f := setupAPI(t)
	owner := f.seedUser(t, "owner@example.com")

	createResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/groups", &owner.ID, map[string]any{"name": "Dinner"}, http.StatusCreated)
	var group groups.Group
	decodeJSONBody(t, createResp, &group)

	expenseResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/consumption", &owner.ID, map[string]any{
		"description": "pizza",
		"amount":      24.5,
		"groupId":     group.ID.String(),
	}, http.StatusCreated)
	var expense consumption.Consumption
	decodeJSONBody(t, expenseResp, &expense)

	messagesPath := "/api/groups/" + group.ID.String() + "/messages"
	msgResp := doJSONRequest(t, f.mux, http.MethodPost, messagesPath, &owner.ID, map[string]any{
		"consumptionId": expense.ID.String(),
	}, http.StatusCreated)
	var message groups.Message
	decodeJSONBody(t, msgResp, &message)
	if message.Content != "sent a fee" {
		t.Fatalf("expected default expense content, got %q", message.Content)
	}
	if message.ConsumptionID == nil || *message.ConsumptionID != expense.ID {
		t.Fatalf("expected expense reference on message")
	}
}

func TestAPI_ConsumptionFlow(t *testing.T) {
	f := setupAPI(t)
	owner := f.seedUser(t, "owner@example.com")
	stranger := f.seedUser(t, "stranger@example.com")

	createResp := doJSONRequest(t, f.mux, http.MethodPost, "/api/consumption", &owner.ID, map[string]any{
		"description": "groceries",
		"amount":      12.0,
	}, http.StatusCreated)
	var record consumption.Consumption
	decodeJSONBody(t, createResp, &record)

	idPath := "/api/consumption/" + record.ID.String()
	doJSONRequest(t, f.mux, http.MethodGet, idPath, &stranger.ID, nil, http.StatusForbidden)
	doJSONRequest(t, f.mux, http.MethodDelete, idPath, &stranger.ID, nil, http.StatusForbidden)

	listResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/consumption", &owner.ID, nil, http.StatusOK)
	var mine []*consumption.Consumption
	decodeJSONBody(t, listResp, &mine)
	if len(mine) != 1 {
		t.Fatalf("expected 1 expense got %d", len(mine))
	}

	doJSONRequest(t, f.mux, http.MethodDelete, idPath, &owner.ID, nil, http.StatusNoContent)
	doJSONRequest(t, f.mux, http.MethodGet, idPath, &owner.ID, nil, http.StatusNotFound)
}

func TestAPI_ConsumptionCreateRejectsInvalidAmount(t *testing.T) {
	f := setupAPI(t)
	owner := f.seedUser(t, "owner@example.com")

	doJSONRequest(t, f.mux, http.MethodPost, "/api/consumption", &owner.ID, map[string]any{
		"description": "void",
		"amount":      0,
	}, http.StatusBadRequest)
}

func uploadImage(t *testing.T, mux *http.ServeMux, filename, contentType string, data []byte, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/images/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func jpegFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestAPI_ImageUploadAndRedirect(t *testing.T) {
	f := setupAPI(t)

	resp := uploadImage(t, f.mux, "photo.jpg", "image/jpeg", jpegFixture(t), http.StatusCreated)
	var record images.Image
	decodeJSONBody(t, resp, &record)
	if record.Filename == "" || !strings.HasSuffix(record.Filename, ".jpg") {
		t.Fatalf("expected stored filename with original extension, got %q", record.Filename)
	}
	if f.storage.Len() != 4 {
		t.Fatalf("expected original plus three renditions in storage, got %d objects", f.storage.Len())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/images/file/"+record.Filename+"?type=tiny", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "tiny/"+record.Filename) {
		t.Fatalf("expected tiny rendition location, got %q", location)
	}

	listResp := doJSONRequest(t, f.mux, http.MethodGet, "/api/images", nil, nil, http.StatusOK)
	var listed imageListResponse
	decodeJSONBody(t, listResp, &listed)
	if listed.Total != 1 || len(listed.Images) != 1 {
		t.Fatalf("expected 1 catalogued image, got %+v", listed)
	}
	if listed.Images[0].URL == "" {
		t.Fatalf("expected resolved URL in listing")
	}

	doJSONRequest(t, f.mux, http.MethodDelete, "/api/images/"+record.ID.String(), nil, nil, http.StatusNoContent)
	if f.storage.Len() != 0 {
		t.Fatalf("expected storage emptied after delete, got %d objects", f.storage.Len())
	}
}

func TestAPI_ImageUploadRejectsUnsupportedType(t *testing.T) {
	f := setupAPI(t)

	uploadImage(t, f.mux, "notes.txt", "text/plain", []byte("hello"), http.StatusUnsupportedMediaType)
}

func TestAPI_ImageUploadFromURLRejectsBadURL(t *testing.T) {
	f := setupAPI(t)

	doJSONRequest(t, f.mux, http.MethodPost, "/api/images/upload-from-url", nil, map[string]any{
		"url": "not-a-url",
	}, http.StatusBadRequest)
}
