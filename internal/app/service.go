// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/talika/judgeboard/internal/adapters/datastore"
	"github.com/talika/judgeboard/internal/domain/judges"
	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/domain/ranking"
	"github.com/talika/judgeboard/internal/domain/scorebook"
	"github.com/talika/judgeboard/internal/domain/tally"
	"github.com/talika/judgeboard/internal/domain/types"
	"github.com/talika/judgeboard/internal/export"
	"github.com/talika/judgeboard/pkg/logger"
	"github.com/talika/judgeboard/pkg/metrics"
)

// Comment placeholders filled in during normalization. Group sheets
// historically show a dash where nothing was written.
const (
	individualCommentDefault = ""
	groupCommentDefault      = "-"
)

// Service implements the API dependencies for the judging console.
type Service struct {
	mu sync.RWMutex

	store    datastore.Store
	validate *validator.Validate

	// Judge sign-in credentials are derived from judge emails by swapping
	// the mail domain for a password tag.
	judgeEmailDomain string
	judgePasswordTag string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing datastore.
func WithStore(store datastore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithJudgeCredentialRule sets the email domain and password tag used to
// derive judge sign-in credentials.
func WithJudgeCredentialRule(domain, tag string) Option {
	return func(s *Service) {
		if domain != "" {
			s.judgeEmailDomain = domain
		}
		if tag != "" {
			s.judgePasswordTag = tag
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		validate:         validator.New(),
		judgeEmailDomain: "@slts.cbe",
		judgePasswordTag: "@2311pass26",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start readies the service. A store must have been provided.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.started = true
	s.logger.Info(ctx, "judging console service started")
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "judging console service stopped")
}

// Registrants returns registrations matching the filter, plus the facet
// lists computed over all registrations (the UI filters against the full
// value sets, not the narrowed ones).
func (s *Service) Registrants(ctx context.Context, filter types.RegistrantFilter) (types.RegistrantsView, error) {
	entrants, facets, err := s.store.RegistrationData(ctx)
	if err != nil {
		return types.RegistrantsView{}, fmt.Errorf("registrants: %w", err)
	}

	matched := entrants[:0]
	for _, e := range entrants {
		if matchRegistrant(e, filter) {
			matched = append(matched, e)
		}
	}
	return types.RegistrantsView{
		Registrants: matched,
		Facets:      facets,
		Total:       len(matched),
	}, nil
}

func matchRegistrant(e *model.Entrant, f types.RegistrantFilter) bool {
	if f.District != "" && e.DistrictKey() != f.District {
		return false
	}
	if f.Event != "" && !slices.Contains(e.RegisteredEvents, f.Event) {
		return false
	}
	if f.Cohort != "" && e.Cohort != f.Cohort {
		return false
	}
	if f.TravelMode != "" && e.ModeOfTravel != f.TravelMode {
		return false
	}
	if f.DropTravelMode != "" && e.ModeOfTravelForDrop != f.DropTravelMode {
		return false
	}
	if f.Accommodation != "" && e.NeedsAccommodation != f.Accommodation {
		return false
	}
	if f.Accompanying != "" && e.HasAccompanying != f.Accompanying {
		return false
	}
	if f.NeedsPickup != nil && e.NeedsPickup != *f.NeedsPickup {
		return false
	}
	if f.NeedsDrop != nil && e.NeedsDrop != *f.NeedsDrop {
		return false
	}
	if f.NeedsFoodPacket != nil && e.NeedsFoodPacket != *f.NeedsFoodPacket {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(e.FullName), q) &&
			!strings.Contains(strings.ToLower(e.ID), q) {
			return false
		}
	}
	return true
}

// Events returns every event with derived judge sign-in credentials.
func (s *Service) Events(ctx context.Context) (types.EventsView, error) {
	events, cohorts, err := s.store.Events(ctx)
	if err != nil {
		return types.EventsView{}, fmt.Errorf("events: %w", err)
	}

	view := types.EventsView{Cohorts: cohorts}
	for _, meta := range events {
		summary := types.EventSummary{
			Name:     meta.Name,
			Kind:     meta.Kind,
			Criteria: meta.Criteria,
			MaxTotal: meta.MaxTotal(),
			Cohorts:  meta.Cohorts,
		}
		for _, email := range meta.JudgeEmails {
			summary.JudgeLogins = append(summary.JudgeLogins, types.JudgeLogin{
				Email:    email,
				Password: s.judgePassword(email),
			})
		}
		view.Events = append(view.Events, summary)
	}
	return view, nil
}

// judgePassword derives the sign-in password from a judge email.
func (s *Service) judgePassword(email string) string {
	return strings.Replace(email, s.judgeEmailDomain, s.judgePasswordTag, 1)
}

// UpdateCriteria validates and persists a replacement criteria list.
func (s *Service) UpdateCriteria(ctx context.Context, event string, update types.CriteriaUpdate) error {
	if err := s.validate.Struct(update); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	seen := make(map[string]struct{}, len(update.Criteria))
	for _, c := range update.Criteria {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate criterion %q", ErrInvalidCriteria, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	if err := s.store.UpdateCriteria(ctx, event, update.Criteria); err != nil {
		return fmt.Errorf("update criteria: %w", err)
	}
	s.logger.Info(ctx, "criteria replaced",
		logger.String("event", event),
		logger.Int("count", len(update.Criteria)),
	)
	return nil
}

// Leaderboard builds the ranked JSON leaderboard for one event.
func (s *Service) Leaderboard(ctx context.Context, event string) (types.LeaderboardView, error) {
	rows, meta, judgeNames, err := s.rankedRows(ctx, event)
	if err != nil {
		return types.LeaderboardView{}, err
	}

	view := types.LeaderboardView{
		Event:      meta.Name,
		Kind:       meta.Kind,
		Criteria:   meta.Criteria,
		JudgeNames: judgeNames,
		MaxTotal:   meta.MaxTotal(),
	}
	criteria := meta.CriteriaNames()
	for i, e := range rows {
		row := types.LeaderboardRow{
			Rank:       i + 1,
			ID:         e.ID,
			Name:       e.FullName,
			District:   e.DistrictKey(),
			Samithi:    e.Samithi,
			Attendance: e.Attendance,
			Members:    e.Members,
			Overall:    e.Overall,
		}
		for j, judgeID := range meta.JudgeIDs {
			block := types.JudgeScores{
				Judge:  judgeNames[j],
				Scores: make(map[string]float64, len(criteria)),
				Total:  e.JudgeTotals[judgeID],
			}
			for _, c := range criteria {
				block.Scores[c] = tally.Number(e.Score[event][judgeID][c])
			}
			if byJudge := e.Comment[event]; byJudge != nil {
				block.Comment = byJudge[judgeID]
			}
			row.Judges = append(row.Judges, block)
		}
		view.Rows = append(view.Rows, row)
	}

	metrics.RecordLeaderboardBuild()
	return view, nil
}

// LeaderboardCSV builds the downloadable leaderboard sheet for one event.
func (s *Service) LeaderboardCSV(ctx context.Context, event string) (export.Artifact, error) {
	rows, meta, judgeNames, err := s.rankedRows(ctx, event)
	if err != nil {
		return export.Artifact{}, err
	}

	var artifact export.Artifact
	if meta.Kind == model.KindGroup {
		artifact = export.GroupLeaderboard(event, meta, rows, judgeNames)
	} else {
		artifact = export.IndividualLeaderboard(event, meta, rows, judgeNames)
	}
	metrics.RecordExport("leaderboard")
	return artifact, nil
}

// CertificateCSV builds the top-five certificate sheet for one event. The
// second return is false when the event has no scored rows.
func (s *Service) CertificateCSV(ctx context.Context, event string) (export.Artifact, bool, error) {
	rows, meta, _, err := s.rankedRows(ctx, event)
	if err != nil {
		return export.Artifact{}, false, err
	}
	artifact, ok := export.Certificate(event, meta.Kind, rows)
	if ok {
		metrics.RecordExport("certificate")
	}
	return artifact, ok, nil
}

// FinalResultsCSV builds the cross-event winners sheet. The second return
// is false when no event produced a row.
func (s *Service) FinalResultsCSV(ctx context.Context) (export.Artifact, bool, error) {
	events, _, err := s.store.Events(ctx)
	if err != nil {
		return export.Artifact{}, false, fmt.Errorf("final results: %w", err)
	}
	artifact, ok := export.FinalResults(ctx, events, s.store, s.logger)
	if ok {
		metrics.RecordExport("final_results")
	}
	return artifact, ok, nil
}

// Stats returns the dashboard header counters.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	entrants, facets, err := s.store.RegistrationData(ctx)
	if err != nil {
		return types.Stats{}, fmt.Errorf("stats: %w", err)
	}
	events, _, err := s.store.Events(ctx)
	if err != nil {
		return types.Stats{}, fmt.Errorf("stats: %w", err)
	}

	stats := types.Stats{
		Registrants: len(entrants),
		Events:      len(events),
		Districts:   len(facets.Districts),
	}
	for _, e := range entrants {
		if e.Attendance == model.Attended {
			stats.CheckedIn++
		}
	}
	return stats, nil
}

// rankedRows runs the full scoring pipeline for one event: normalize the
// sparse score maps, total them, collapse to district groups for group
// events, then rank. Judge display names resolve from the ordering
// document, degrading to generated names when it is missing.
func (s *Service) rankedRows(ctx context.Context, event string) ([]*model.Entrant, *model.EventMetadata, []string, error) {
	entrants, meta, err := s.store.JudgeEventData(ctx, event)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("event data: %w", err)
	}

	criteria := meta.CriteriaNames()
	commentDefault := individualCommentDefault
	if meta.Kind == model.KindGroup {
		commentDefault = groupCommentDefault
	}

	scorebook.NormalizeAll(entrants, event, criteria, meta.JudgeIDs, commentDefault)
	tally.RecomputeAll(entrants, event, criteria, meta.JudgeIDs)

	rows := entrants
	if meta.Kind == model.KindGroup {
		rows = ranking.GroupByDistrict(entrants)
		tally.RecomputeAll(rows, event, criteria, meta.JudgeIDs)
	}
	ranking.SortLeaderboard(rows)

	judgeNames := s.judgeNames(ctx, event, len(meta.JudgeIDs))
	return rows, meta, judgeNames, nil
}

// judgeNames resolves display names for an event's judges. Any failure to
// read the ordering document falls back to generated names.
func (s *Service) judgeNames(ctx context.Context, event string, judgeCount int) []string {
	mapping, err := s.store.JudgeOrderMapping(ctx, event)
	if err != nil {
		s.logger.Debug(ctx, "judge order unavailable, using fallback names",
			logger.String("event", event),
			logger.Error(err),
		)
		return judges.Fallback(judgeCount)
	}
	// Clean pads the resolved names back to the event's judge count; the
	// mapping's expected count may disagree with the judge list.
	return judges.Clean(judges.Resolve(mapping, judgeCount), judgeCount)
}
