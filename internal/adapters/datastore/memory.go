package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/talika/judgeboard/internal/domain/model"
)

// Fixtures is the JSON document the in-memory store is seeded from. The
// cmd/seed tool generates one.
type Fixtures struct {
	Registrations []*model.Entrant                    `json:"registrations"`
	Events        []*model.EventMetadata              `json:"events"`
	JudgeOrder    map[string]*model.JudgeOrderMapping `json:"judgeOrder,omitempty"`
}

// MemoryStore implements Store over an in-process fixture set. It backs
// tests and local runs without a Firestore project.
type MemoryStore struct {
	mu sync.RWMutex

	registrations []*model.Entrant
	events        []*model.EventMetadata
	judgeOrder    map[string]*model.JudgeOrderMapping
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithFixtures seeds the store from an in-memory fixture set.
func WithFixtures(f Fixtures) MemoryOption {
	return func(s *MemoryStore) {
		s.registrations = f.Registrations
		s.events = f.Events
		s.judgeOrder = f.JudgeOrder
	}
}

// NewMemoryStore creates a seeded in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		judgeOrder: make(map[string]*model.JudgeOrderMapping),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.judgeOrder == nil {
		s.judgeOrder = make(map[string]*model.JudgeOrderMapping)
	}
	for _, meta := range s.events {
		inferKind(meta)
	}
	return s
}

// LoadMemoryStore reads a fixtures JSON file and builds a store from it.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w: %w", ErrInvalidShape, err)
	}
	return NewMemoryStore(WithFixtures(f)), nil
}

// RegistrationData returns cloned registrations plus facet lists in
// first-seen order.
func (s *MemoryStore) RegistrationData(_ context.Context) ([]*model.Entrant, model.RegistrationFacets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Entrant, len(s.registrations))
	facets := model.RegistrationFacets{}
	for i, e := range s.registrations {
		out[i] = cloneEntrant(e)
		facets.Districts = appendDistinct(facets.Districts, e.District)
		facets.Cohorts = appendDistinct(facets.Cohorts, e.Cohort)
		facets.TravelModes = appendDistinct(facets.TravelModes, e.ModeOfTravel)
		facets.DropTravelModes = appendDistinct(facets.DropTravelModes, e.ModeOfTravelForDrop)
		for _, ev := range e.RegisteredEvents {
			facets.Events = appendDistinct(facets.Events, ev)
		}
	}
	return out, facets, nil
}

// Events returns cloned event metadata plus the distinct cohort tags.
func (s *MemoryStore) Events(_ context.Context) ([]*model.EventMetadata, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.EventMetadata, len(s.events))
	var cohorts []string
	for i, meta := range s.events {
		out[i] = cloneMetadata(meta)
		for _, c := range meta.Cohorts {
			cohorts = appendDistinct(cohorts, c)
		}
	}
	return out, cohorts, nil
}

// JudgeEventData returns the registrations entered into one event and that
// event's metadata.
func (s *MemoryStore) JudgeEventData(_ context.Context, event string) ([]*model.Entrant, *model.EventMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta := s.findEvent(event)
	if meta == nil {
		return nil, nil, fmt.Errorf("event %q: %w", event, ErrNotFound)
	}

	var entrants []*model.Entrant
	for _, e := range s.registrations {
		if slices.Contains(e.RegisteredEvents, event) {
			entrants = append(entrants, cloneEntrant(e))
		}
	}
	return entrants, cloneMetadata(meta), nil
}

// JudgeOrderMapping returns the ordering document for an event.
func (s *MemoryStore) JudgeOrderMapping(_ context.Context, event string) (*model.JudgeOrderMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mapping, ok := s.judgeOrder[event]
	if !ok || mapping == nil {
		return nil, fmt.Errorf("judge order for %q: %w", event, ErrNotFound)
	}
	clone := &model.JudgeOrderMapping{
		Entries:            slices.Clone(mapping.Entries),
		ExpectedJudgeCount: mapping.ExpectedJudgeCount,
	}
	return clone, nil
}

// UpdateCriteria replaces an event's evaluation criteria in place.
func (s *MemoryStore) UpdateCriteria(_ context.Context, event string, criteria []model.Criterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := s.findEvent(event)
	if meta == nil {
		return fmt.Errorf("event %q: %w", event, ErrNotFound)
	}
	meta.Criteria = slices.Clone(criteria)
	return nil
}

func (s *MemoryStore) findEvent(name string) *model.EventMetadata {
	for _, meta := range s.events {
		if meta.Name == name {
			return meta
		}
	}
	return nil
}

// cloneEntrant deep-copies an entrant so callers can normalize and tally
// without touching stored state.
func cloneEntrant(e *model.Entrant) *model.Entrant {
	clone := *e
	clone.RegisteredEvents = slices.Clone(e.RegisteredEvents)
	clone.Members = slices.Clone(e.Members)
	clone.JudgeTotals = nil
	clone.Overall = 0

	if e.Score != nil {
		clone.Score = make(map[string]map[string]map[string]any, len(e.Score))
		for event, judgesMap := range e.Score {
			clone.Score[event] = make(map[string]map[string]any, len(judgesMap))
			for judgeID, cells := range judgesMap {
				copied := make(map[string]any, len(cells))
				for criterion, v := range cells {
					copied[criterion] = v
				}
				clone.Score[event][judgeID] = copied
			}
		}
	}
	if e.Comment != nil {
		clone.Comment = make(map[string]map[string]string, len(e.Comment))
		for event, comments := range e.Comment {
			copied := make(map[string]string, len(comments))
			for judgeID, c := range comments {
				copied[judgeID] = c
			}
			clone.Comment[event] = copied
		}
	}
	if e.Substitute != nil {
		clone.Substitute = make(map[string]*model.Substitute, len(e.Substitute))
		for event, sub := range e.Substitute {
			if sub == nil {
				continue
			}
			copied := *sub
			clone.Substitute[event] = &copied
		}
	}
	return &clone
}

func cloneMetadata(meta *model.EventMetadata) *model.EventMetadata {
	clone := *meta
	clone.Criteria = slices.Clone(meta.Criteria)
	clone.JudgeIDs = slices.Clone(meta.JudgeIDs)
	clone.JudgeEmails = slices.Clone(meta.JudgeEmails)
	clone.Cohorts = slices.Clone(meta.Cohorts)
	return &clone
}

func appendDistinct(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
