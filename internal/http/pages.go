package http

import (
	"net/http"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/pages"
)

type pageCreatePayload struct {
	Title       string                  `json:"title"`
	Slug        string                  `json:"slug,omitempty"`
	Components  []*components.Component `json:"components,omitempty"`
	Metadata    map[string]any          `json:"metadata,omitempty"`
	IsPublished bool                    `json:"isPublished,omitempty"`
}

type pageUpdatePayload struct {
	Title       *string                 `json:"title,omitempty"`
	Slug        *string                 `json:"slug,omitempty"`
	Components  []*components.Component `json:"components,omitempty"`
	Metadata    map[string]any          `json:"metadata,omitempty"`
	IsPublished *bool                   `json:"isPublished,omitempty"`
}

type pageListResponse struct {
	Pages []*pages.Page `json:"pages"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (api *API) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/slug/{slug}", api.handlePageGetBySlug)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePageGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePageDelete)
	mux.HandleFunc("POST "+root+"/{id}/publish", api.handlePagePublish)
	mux.HandleFunc("POST "+root+"/{id}/unpublish", api.handlePageUnpublish)
}

func (api *API) handlePageList(w http.ResponseWriter, r *http.Request) {
	req := pages.ListPagesRequest{
		Page:      parseIntQuery(r.URL.Query().Get("page"), 1),
		Limit:     parseIntQuery(r.URL.Query().Get("limit"), pages.DefaultPageSize),
		Published: parseBoolQuery(r.URL.Query().Get("published")),
	}
	if r.URL.Query().Get("mine") == "true" {
		id, ok := requireActor(w, r)
		if !ok {
			return
		}
		req.UserID = &id
	}

	result, err := api.pages.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageListResponse{
		Pages: result.Pages,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

func (api *API) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	req := pages.CreatePageRequest{
		Title:       payload.Title,
		Slug:        payload.Slug,
		Components:  payload.Components,
		Metadata:    payload.Metadata,
		IsPublished: payload.IsPublished,
	}
	if id, ok := actorID(r); ok {
		req.UserID = &id
	}

	record, err := api.pages.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handlePageGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handlePageGetBySlug(w http.ResponseWriter, r *http.Request) {
	record, err := api.pages.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	record, err := api.pages.Update(r.Context(), pages.UpdatePageRequest{
		ID:          id,
		Title:       payload.Title,
		Slug:        payload.Slug,
		Components:  payload.Components,
		Metadata:    payload.Metadata,
		IsPublished: payload.IsPublished,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.pages.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handlePagePublish(w http.ResponseWriter, r *http.Request) {
	api.setPagePublished(w, r, true)
}

func (api *API) handlePageUnpublish(w http.ResponseWriter, r *http.Request) {
	api.setPagePublished(w, r, false)
}

func (api *API) setPagePublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var record any
	if published {
		record, err = api.pages.Publish(r.Context(), id)
	} else {
		record, err = api.pages.Unpublish(r.Context(), id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
