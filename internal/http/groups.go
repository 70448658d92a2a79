package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/groups"
)

type groupCreatePayload struct {
	Name string `json:"name"`
}

type groupInvitePayload struct {
	Email string `json:"email"`
}

type groupMessagePayload struct {
	Content       string     `json:"content,omitempty"`
	ConsumptionID *uuid.UUID `json:"consumptionId,omitempty"`
}

func (api *API) registerGroupRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "groups")
	mux.HandleFunc("GET "+root, api.handleGroupList)
	mux.HandleFunc("POST "+root, api.handleGroupCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleGroupGet)
	mux.HandleFunc("POST "+root+"/{id}/invite", api.handleGroupInvite)
	mux.HandleFunc("GET "+root+"/{id}/messages", api.handleGroupMessages)
	mux.HandleFunc("POST "+root+"/{id}/messages", api.handleGroupSendMessage)
}

func (api *API) handleGroupList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	listed, err := api.groups.ListForUser(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if listed == nil {
		listed = []*groups.Group{}
	}
	writeJSON(w, http.StatusOK, listed)
}

func (api *API) handleGroupCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var payload groupCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	group, err := api.groups.Create(r.Context(), groups.CreateGroupRequest{
		Name:      payload.Name,
		CreatorID: actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (api *API) handleGroupGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	group, err := api.groups.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	isMember, err := api.groups.IsMember(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if !isMember {
		writeError(w, groups.ErrNotMember)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (api *API) handleGroupInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload groupInvitePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	member, err := api.groups.Invite(r.Context(), groups.InviteRequest{
		GroupID: id,
		ActorID: actor,
		Email:   payload.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (api *API) handleGroupMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	messages, err := api.groups.Messages(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []*groups.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (api *API) handleGroupSendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload groupMessagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	message, err := api.groups.SendMessage(r.Context(), groups.SendMessageRequest{
		GroupID:       id,
		SenderID:      actor,
		Content:       payload.Content,
		ConsumptionID: payload.ConsumptionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}
