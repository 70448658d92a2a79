package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/components"
	"github.com/monospace/pagebuilder/internal/consumption"
	"github.com/monospace/pagebuilder/internal/groups"
	"github.com/monospace/pagebuilder/internal/images"
	"github.com/monospace/pagebuilder/internal/pages"
	"github.com/monospace/pagebuilder/internal/users"
	"github.com/monospace/pagebuilder/internal/validation"
)

// actorHeader carries the authenticated user id. Session handling lives in
// the gateway in front of this service.
const actorHeader = "X-User-ID"

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case errors.Is(err, components.ErrNotFound),
		errors.Is(err, pages.ErrNotFound),
		errors.Is(err, images.ErrNotFound),
		errors.Is(err, groups.ErrNotFound),
		errors.Is(err, consumption.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}

	case errors.Is(err, groups.ErrNotMember),
		errors.Is(err, consumption.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden", Message: err.Error()}

	case errors.Is(err, groups.ErrAlreadyMember):
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}

	case errors.Is(err, images.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "file_too_large", Message: err.Error()}

	case errors.Is(err, images.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, errorResponse{Error: "unsupported_media_type", Message: err.Error()}

	case errors.Is(err, images.ErrFetchFailed):
		return http.StatusBadGateway, errorResponse{Error: "fetch_failed", Message: err.Error()}

	case errors.Is(err, validation.ErrSchemaInvalid),
		errors.Is(err, validation.ErrSchemaValidation),
		errors.Is(err, pages.ErrInvalidTree):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}

	case errors.Is(err, components.ErrInvalidType),
		errors.Is(err, components.ErrFieldMismatch),
		errors.Is(err, pages.ErrTitleRequired),
		errors.Is(err, pages.ErrSlugInvalid),
		errors.Is(err, images.ErrNoFile),
		errors.Is(err, images.ErrURLInvalid),
		errors.Is(err, groups.ErrNameRequired),
		errors.Is(err, groups.ErrContentRequired),
		errors.Is(err, consumption.ErrDescriptionRequired),
		errors.Is(err, consumption.ErrAmountInvalid):
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

// actorID resolves the calling user from the request header. The second
// return reports whether a caller was identified at all.
func actorID(r *http.Request) (uuid.UUID, bool) {
	if r == nil {
		return uuid.Nil, false
	}
	id, err := parseUUID(r.Header.Get(actorHeader))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requireActor resolves the caller or writes a 401.
func requireActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := actorID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "missing or invalid " + actorHeader + " header",
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseBoolQuery(value string) *bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}
