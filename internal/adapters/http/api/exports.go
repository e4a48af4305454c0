package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talika/judgeboard/internal/export"
)

// ExportsDependencies defines the interface for CSV downloads.
type ExportsDependencies interface {
	LeaderboardCSV(ctx context.Context, event string) (export.Artifact, error)
	CertificateCSV(ctx context.Context, event string) (export.Artifact, bool, error)
	FinalResultsCSV(ctx context.Context) (export.Artifact, bool, error)
}

// ExportsHandler serves the downloadable CSV sheets.
type ExportsHandler struct {
	deps ExportsDependencies
}

// NewExportsHandler creates a new exports handler.
func NewExportsHandler(deps ExportsDependencies) *ExportsHandler {
	return &ExportsHandler{deps: deps}
}

// HandleLeaderboardCSV handles GET /events/{event}/leaderboard.csv.
func (h *ExportsHandler) HandleLeaderboardCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.leaderboard_csv"
	event := r.PathValue("event")
	if event == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	artifact, err := h.deps.LeaderboardCSV(r.Context(), event)
	if err != nil {
		h.exportError(w, op, err)
		return
	}
	writeArtifact(w, artifact)
}

// HandleCertificateCSV handles GET /events/{event}/cert.csv. Events with
// no scored rows download nothing and return 204.
func (h *ExportsHandler) HandleCertificateCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.cert_csv"
	event := r.PathValue("event")
	if event == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	artifact, ok, err := h.deps.CertificateCSV(r.Context(), event)
	if err != nil {
		h.exportError(w, op, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeArtifact(w, artifact)
}

// HandleFinalResultsCSV handles GET /final-results.csv. When no event
// contributed winners the response is 204.
func (h *ExportsHandler) HandleFinalResultsCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.final_results_csv"
	artifact, ok, err := h.deps.FinalResultsCSV(r.Context())
	if err != nil {
		h.exportError(w, op, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeArtifact(w, artifact)
}

func (h *ExportsHandler) exportError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if isBadUpstream(err) {
		writeError(w, http.StatusBadGateway, "bad_upstream", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}

// writeArtifact streams a generated file as an attachment download.
func writeArtifact(w http.ResponseWriter, a export.Artifact) {
	w.Header().Set("Content-Type", a.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
