package http

import (
	"net/http"

	"github.com/monospace/pagebuilder/internal/components"
)

type componentCreatePayload struct {
	Type     string                  `json:"type"`
	Content  *string                 `json:"content,omitempty"`
	Src      *string                 `json:"src,omitempty"`
	Alt      *string                 `json:"alt,omitempty"`
	IconName *string                 `json:"iconName,omitempty"`
	Size     *int                    `json:"size,omitempty"`
	Color    *string                 `json:"color,omitempty"`
	Style    components.Style        `json:"style,omitempty"`
	Position *components.Position    `json:"position,omitempty"`
	Children []*components.Component `json:"children,omitempty"`
}

type componentUpdatePayload struct {
	Type     *string                 `json:"type,omitempty"`
	Content  *string                 `json:"content,omitempty"`
	Src      *string                 `json:"src,omitempty"`
	Alt      *string                 `json:"alt,omitempty"`
	IconName *string                 `json:"iconName,omitempty"`
	Size     *int                    `json:"size,omitempty"`
	Color    *string                 `json:"color,omitempty"`
	Style    components.Style        `json:"style,omitempty"`
	Position *components.Position    `json:"position,omitempty"`
	Children []*components.Component `json:"children,omitempty"`
}

func (api *API) registerComponentRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "components")
	mux.HandleFunc("GET "+root, api.handleComponentList)
	mux.HandleFunc("POST "+root, api.handleComponentCreate)
	mux.HandleFunc("GET "+root+"/types", api.handleComponentTypes)
	mux.HandleFunc("GET "+root+"/type/{type}", api.handleComponentListByType)
	mux.HandleFunc("GET "+root+"/{id}", api.handleComponentGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handleComponentUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleComponentDelete)
}

func (api *API) handleComponentList(w http.ResponseWriter, r *http.Request) {
	result, err := api.components.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Components)
}

func (api *API) handleComponentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.components.Types(r.Context()))
}

func (api *API) handleComponentListByType(w http.ResponseWriter, r *http.Request) {
	result, err := api.components.ListByType(r.Context(), components.Type(r.PathValue("type")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Components)
}

func (api *API) handleComponentGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	node, err := api.components.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (api *API) handleComponentCreate(w http.ResponseWriter, r *http.Request) {
	var payload componentCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	node, err := api.components.Create(r.Context(), components.CreateComponentRequest{
		Type:     components.Type(payload.Type),
		Content:  payload.Content,
		Src:      payload.Src,
		Alt:      payload.Alt,
		IconName: payload.IconName,
		Size:     payload.Size,
		Color:    payload.Color,
		Style:    payload.Style,
		Position: payload.Position,
		Children: payload.Children,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, node)
}

func (api *API) handleComponentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload componentUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	req := components.UpdateComponentRequest{
		ID:       id,
		Content:  payload.Content,
		Src:      payload.Src,
		Alt:      payload.Alt,
		IconName: payload.IconName,
		Size:     payload.Size,
		Color:    payload.Color,
		Style:    payload.Style,
		Position: payload.Position,
		Children: payload.Children,
	}
	if payload.Type != nil {
		requested := components.Type(*payload.Type)
		req.Type = &requested
	}

	node, err := api.components.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (api *API) handleComponentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.components.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
