package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/talika/judgeboard/internal/domain/types"
)

// RegistrantsDependencies defines the interface for registration listings.
type RegistrantsDependencies interface {
	Registrants(ctx context.Context, filter types.RegistrantFilter) (types.RegistrantsView, error)
}

// RegistrantsHandler handles registration listing requests.
type RegistrantsHandler struct {
	deps RegistrantsDependencies
}

// NewRegistrantsHandler creates a new registrants handler.
func NewRegistrantsHandler(deps RegistrantsDependencies) *RegistrantsHandler {
	return &RegistrantsHandler{deps: deps}
}

// HandleList handles GET /registrants requests. All filters are query
// parameters; absent parameters do not constrain.
func (h *RegistrantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_registrants"
	view, err := h.deps.Registrants(r.Context(), filterFromQuery(r.URL.Query()))
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

func filterFromQuery(q url.Values) types.RegistrantFilter {
	return types.RegistrantFilter{
		District:        q.Get("district"),
		Event:           q.Get("event"),
		Cohort:          q.Get("cohort"),
		TravelMode:      q.Get("travel_mode"),
		DropTravelMode:  q.Get("drop_travel_mode"),
		Accommodation:   q.Get("needs_accommodation"),
		Accompanying:    q.Get("has_accompanying_adults"),
		Query:           q.Get("q"),
		NeedsPickup:     boolParam(q, "needs_pickup"),
		NeedsDrop:       boolParam(q, "needs_drop"),
		NeedsFoodPacket: boolParam(q, "needs_food_packet"),
	}
}

// boolParam parses an optional boolean query parameter; absent or
// unparseable values leave the filter unconstrained.
func boolParam(q url.Values, key string) *bool {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
