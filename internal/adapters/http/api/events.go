package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/talika/judgeboard/internal/app"
	"github.com/talika/judgeboard/internal/domain/types"
)

// EventsDependencies defines the interface for event operations.
type EventsDependencies interface {
	Events(ctx context.Context) (types.EventsView, error)
	UpdateCriteria(ctx context.Context, event string, update types.CriteriaUpdate) error
}

// EventsHandler handles event listing and criteria updates.
type EventsHandler struct {
	deps EventsDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventsDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleList handles GET /events requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"
	view, err := h.deps.Events(r.Context())
	if err != nil {
		if isBadUpstream(err) {
			writeError(w, http.StatusBadGateway, "bad_upstream", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePutCriteria handles PUT /events/{event}/criteria requests.
func (h *EventsHandler) HandlePutCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_criteria"
	event := r.PathValue("event")
	if event == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var update types.CriteriaUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	err := h.deps.UpdateCriteria(r.Context(), event, update)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case errors.Is(err, service.ErrInvalidCriteria):
		writeError(w, http.StatusBadRequest, "invalid_criteria", err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
