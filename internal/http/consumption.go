package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/consumption"
)

type consumptionCreatePayload struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Date        *time.Time `json:"date,omitempty"`
	GroupID     *uuid.UUID `json:"groupId,omitempty"`
}

func (api *API) registerConsumptionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "consumption")
	mux.HandleFunc("GET "+root, api.handleConsumptionList)
	mux.HandleFunc("POST "+root, api.handleConsumptionCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleConsumptionGet)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleConsumptionDelete)
}

func (api *API) handleConsumptionList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	records, err := api.consumption.ListForUser(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*consumption.Consumption{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *API) handleConsumptionCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var payload consumptionCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	req := consumption.CreateConsumptionRequest{
		Description: payload.Description,
		Amount:      payload.Amount,
		UserID:      actor,
		GroupID:     payload.GroupID,
	}
	if payload.Date != nil {
		req.Date = *payload.Date
	}

	record, err := api.consumption.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleConsumptionGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.consumption.Get(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleConsumptionDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.consumption.Delete(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
