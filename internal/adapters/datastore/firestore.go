package datastore

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/pkg/logger"
	"github.com/talika/judgeboard/pkg/metrics"
)

// Firestore collection names, fixed by the legacy console.
const (
	collRegistrations = "registrations"
	collEvents        = "events"
	collJudgeMapping  = "eventJudgeMapping"
)

// FirestoreStore implements Store over the legacy Firestore collections.
type FirestoreStore struct {
	client *firestore.Client
	log    logger.Logger
}

// NewFirestoreStore connects to Firestore. When FIRESTORE_EMULATOR_HOST is
// set, the client skips authentication and talks to the emulator.
func NewFirestoreStore(ctx context.Context, projectID string, log logger.Logger) (*FirestoreStore, error) {
	var client *firestore.Client
	var err error
	if os.Getenv("FIRESTORE_EMULATOR_HOST") != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithoutAuthentication())
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	if log == nil {
		log = logger.Get()
	}
	return &FirestoreStore{client: client, log: log.Named("firestore")}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// RegistrationData reads every registration document.
func (s *FirestoreStore) RegistrationData(ctx context.Context) ([]*model.Entrant, model.RegistrationFacets, error) {
	const op = "registration_data"
	start := time.Now()

	var entrants []*model.Entrant
	facets := model.RegistrationFacets{}

	it := s.client.Collection(collRegistrations).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, facets, fmt.Errorf("%s: %w", op, err)
		}
		e, err := decodeEntrant(doc.Ref.ID, doc.Data())
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, facets, fmt.Errorf("%s: %w", op, err)
		}
		entrants = append(entrants, e)
		facets.Districts = appendDistinct(facets.Districts, e.District)
		facets.Cohorts = appendDistinct(facets.Cohorts, e.Cohort)
		facets.TravelModes = appendDistinct(facets.TravelModes, e.ModeOfTravel)
		facets.DropTravelModes = appendDistinct(facets.DropTravelModes, e.ModeOfTravelForDrop)
		for _, ev := range e.RegisteredEvents {
			facets.Events = appendDistinct(facets.Events, ev)
		}
	}

	metrics.ObserveFetch(op, float64(time.Since(start).Milliseconds()))
	return entrants, facets, nil
}

// Events reads every event document.
func (s *FirestoreStore) Events(ctx context.Context) ([]*model.EventMetadata, []string, error) {
	const op = "events"
	start := time.Now()

	var events []*model.EventMetadata
	var cohorts []string

	it := s.client.Collection(collEvents).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		meta, err := decodeMetadata(doc.Ref.ID, doc.Data())
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, meta)
		for _, c := range meta.Cohorts {
			cohorts = appendDistinct(cohorts, c)
		}
	}

	metrics.ObserveFetch(op, float64(time.Since(start).Milliseconds()))
	return events, cohorts, nil
}

// JudgeEventData reads the event document plus the registrations entered
// into it.
func (s *FirestoreStore) JudgeEventData(ctx context.Context, event string) ([]*model.Entrant, *model.EventMetadata, error) {
	const op = "judge_event_data"
	start := time.Now()

	doc, err := s.client.Collection(collEvents).Doc(event).Get(ctx)
	if err != nil {
		metrics.RecordFetchError(op)
		return nil, nil, fmt.Errorf("event %q: %w", event, ErrNotFound)
	}
	meta, err := decodeMetadata(doc.Ref.ID, doc.Data())
	if err != nil {
		metrics.RecordFetchError(op)
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var entrants []*model.Entrant
	it := s.client.Collection(collRegistrations).
		Where("registeredEvents", "array-contains", event).
		Documents(ctx)
	defer it.Stop()
	for {
		d, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		e, err := decodeEntrant(d.Ref.ID, d.Data())
		if err != nil {
			metrics.RecordFetchError(op)
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		entrants = append(entrants, e)
	}

	metrics.ObserveFetch(op, float64(time.Since(start).Milliseconds()))
	return entrants, meta, nil
}

// JudgeOrderMapping reads the ordering document for one event. Every
// failure collapses to ErrNotFound; callers fall back to generated judge
// names either way.
func (s *FirestoreStore) JudgeOrderMapping(ctx context.Context, event string) (*model.JudgeOrderMapping, error) {
	doc, err := s.client.Collection(collJudgeMapping).Doc(event).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("judge order for %q: %w", event, ErrNotFound)
	}
	return decodeJudgeOrder(doc.Data()), nil
}

// UpdateCriteria replaces the criteria map on the event document, writing
// both the legacy map form and the explicit order array.
func (s *FirestoreStore) UpdateCriteria(ctx context.Context, event string, criteria []model.Criterion) error {
	marks := make(map[string]float64, len(criteria))
	order := make([]string, len(criteria))
	for i, c := range criteria {
		marks[c.Name] = c.MaxMarks
		order[i] = c.Name
	}
	_, err := s.client.Collection(collEvents).Doc(event).Update(ctx, []firestore.Update{
		{Path: "evalCriteria", Value: marks},
		{Path: "evalCriteriaOrder", Value: order},
	})
	if err != nil {
		return fmt.Errorf("update criteria for %q: %w", event, err)
	}
	metrics.RecordCriteriaUpdate()
	return nil
}
