// Package datastore defines the read/write interface over the
// registration and judging records, and its implementations.
package datastore

import (
	"context"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

// Store provides access to registrations, event metadata and the judge
// ordering documents. Every read returns data the caller owns for the
// duration of its processing; implementations must not hand out shared
// mutable state.
type Store interface {
	// RegistrationData returns every registration plus the distinct
	// filterable facet values.
	RegistrationData(ctx context.Context) ([]*model.Entrant, model.RegistrationFacets, error)

	// Events returns all event metadata plus the distinct cohort tags.
	Events(ctx context.Context) ([]*model.EventMetadata, []string, error)

	// JudgeEventData returns the registrations entered into one event
	// together with that event's metadata. ErrNotFound when the event is
	// unknown.
	JudgeEventData(ctx context.Context, event string) ([]*model.Entrant, *model.EventMetadata, error)

	// JudgeOrderMapping returns the judge ordering document for an event.
	// ErrNotFound when no document exists; callers degrade to fallback
	// judge names on any failure.
	JudgeOrderMapping(ctx context.Context, event string) (*model.JudgeOrderMapping, error)

	// UpdateCriteria replaces an event's evaluation criteria.
	UpdateCriteria(ctx context.Context, event string, criteria []model.Criterion) error
}

// legacyGroupMarker is the name token historic documents used to flag a
// team event. Only this boundary layer looks at it; core logic reads the
// explicit Kind tag.
const legacyGroupMarker = "GROUP"

// inferKind fills in the explicit event kind for documents that predate
// the tag.
func inferKind(meta *model.EventMetadata) {
	if meta.Kind != "" {
		return
	}
	if strings.Contains(meta.Name, legacyGroupMarker) {
		meta.Kind = model.KindGroup
		return
	}
	meta.Kind = model.KindIndividual
}
