// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/talika/judgeboard/internal/adapters/datastore"
	"github.com/talika/judgeboard/internal/domain/types"
	"github.com/talika/judgeboard/internal/export"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Registrants(ctx context.Context, filter types.RegistrantFilter) (types.RegistrantsView, error)
	Events(ctx context.Context) (types.EventsView, error)
	UpdateCriteria(ctx context.Context, event string, update types.CriteriaUpdate) error
	Leaderboard(ctx context.Context, event string) (types.LeaderboardView, error)
	LeaderboardCSV(ctx context.Context, event string) (export.Artifact, error)
	CertificateCSV(ctx context.Context, event string) (export.Artifact, bool, error)
	FinalResultsCSV(ctx context.Context) (export.Artifact, bool, error)
	Stats(ctx context.Context) (types.Stats, error)
}

// Server wires HTTP routes for the admin API.
type Server struct {
	auth *Authenticator

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	registrantsHandler *RegistrantsHandler
	eventsHandler      *EventsHandler
	leaderboardHandler *LeaderboardHandler
	exportsHandler     *ExportsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, auth *Authenticator) *Server {
	return &Server{
		auth:               auth,
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		registrantsHandler: NewRegistrantsHandler(deps),
		eventsHandler:      NewEventsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		exportsHandler:     NewExportsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Everything except the health
// endpoint sits behind admin authentication.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	admin := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(s.auth.RequireAdmin(h), endpoint)
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", admin(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /registrants", admin(s.registrantsHandler.HandleList, "registrants"))
	mux.HandleFunc("GET /events", admin(s.eventsHandler.HandleList, "events"))
	mux.HandleFunc("PUT /events/{event}/criteria", admin(s.eventsHandler.HandlePutCriteria, "criteria"))
	mux.HandleFunc("GET /events/{event}/leaderboard", admin(s.leaderboardHandler.HandleGet, "leaderboard"))
	mux.HandleFunc("GET /events/{event}/leaderboard.csv", admin(s.exportsHandler.HandleLeaderboardCSV, "leaderboard_csv"))
	mux.HandleFunc("GET /events/{event}/cert.csv", admin(s.exportsHandler.HandleCertificateCSV, "cert_csv"))
	mux.HandleFunc("GET /final-results.csv", admin(s.exportsHandler.HandleFinalResultsCSV, "final_results_csv"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, datastore.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// isBadUpstream translates malformed datastore documents to 502.
func isBadUpstream(err error) bool {
	return errors.Is(err, datastore.ErrInvalidShape)
}
