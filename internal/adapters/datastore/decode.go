package datastore

import (
	"fmt"
	"sort"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/domain/tally"
)

// decodeEntrant builds an Entrant from a raw registration document. The
// document id doubles as the student id when the field is missing, which
// matches how older records were written.
func decodeEntrant(id string, data map[string]any) (*model.Entrant, error) {
	if data == nil {
		return nil, fmt.Errorf("registration %q: %w", id, ErrInvalidShape)
	}
	e := &model.Entrant{
		ID:                  asString(data["studentId"]),
		FullName:            asString(data["studentFullName"]),
		Gender:              asString(data["gender"]),
		DateOfBirth:         asString(data["dateOfBirth"]),
		District:            asString(data["district"]),
		Samithi:             asString(data["samithiName"]),
		Cohort:              asString(data["studentGroup"]),
		Attendance:          asString(data["attendance"]),
		RegisteredEvents:    asStringSlice(data["registeredEvents"]),
		ModeOfTravel:        asString(data["modeOfTravel"]),
		ModeOfTravelForDrop: asString(data["modeOfTravelForDrop"]),
		NeedsPickup:         asBool(data["needsPickup"]),
		NeedsDrop:           asBool(data["needsDrop"]),
		NeedsAccommodation:  asString(data["needsAccommodation"]),
		NeedsFoodPacket:     asBool(data["needsReturnFoodPacket"]),
		HasAccompanying:     asString(data["hasAccompanyingAdults"]),
		Score:               decodeScore(data["score"]),
		Comment:             decodeComment(data["comment"]),
		Substitute:          decodeSubstitutes(data["substitute"]),
	}
	if e.ID == "" {
		e.ID = id
	}
	return e, nil
}

// decodeMetadata builds EventMetadata from a raw event document. Criteria
// order follows evalCriteriaOrder when present; older documents without it
// get their criterion names sorted so columns stay stable across reads.
func decodeMetadata(name string, data map[string]any) (*model.EventMetadata, error) {
	if data == nil {
		return nil, fmt.Errorf("event %q: %w", name, ErrInvalidShape)
	}
	meta := &model.EventMetadata{
		Name:        name,
		JudgeIDs:    asStringSlice(data["judgeIdList"]),
		JudgeEmails: asStringSlice(data["judgeEmailList"]),
		Cohorts:     asStringSlice(data["group"]),
	}

	marks, _ := data["evalCriteria"].(map[string]any)
	order := asStringSlice(data["evalCriteriaOrder"])
	if len(order) == 0 {
		for k := range marks {
			order = append(order, k)
		}
		sort.Strings(order)
	}
	for _, n := range order {
		raw, ok := marks[n]
		if !ok {
			continue
		}
		meta.Criteria = append(meta.Criteria, model.Criterion{Name: n, MaxMarks: tally.Number(raw)})
	}

	inferKind(meta)
	return meta, nil
}

// decodeJudgeOrder builds a JudgeOrderMapping from a raw ordering document.
func decodeJudgeOrder(data map[string]any) *model.JudgeOrderMapping {
	m := &model.JudgeOrderMapping{
		ExpectedJudgeCount: int(tally.Number(data["expectedJudgeCount"])),
	}
	raw, _ := data["judgeOrder"].([]any)
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		m.Entries = append(m.Entries, model.JudgeOrderEntry{
			Name:  asString(entry["name"]),
			Order: int(tally.Number(entry["order"])),
		})
	}
	return m
}

func decodeScore(raw any) map[string]map[string]map[string]any {
	byEvent, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]map[string]map[string]any, len(byEvent))
	for event, v := range byEvent {
		byJudge, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out[event] = make(map[string]map[string]any, len(byJudge))
		for judge, cells := range byJudge {
			byCriterion, ok := cells.(map[string]any)
			if !ok {
				continue
			}
			out[event][judge] = byCriterion
		}
	}
	return out
}

func decodeComment(raw any) map[string]map[string]string {
	byEvent, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]map[string]string, len(byEvent))
	for event, v := range byEvent {
		byJudge, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out[event] = make(map[string]string, len(byJudge))
		for judge, text := range byJudge {
			out[event][judge] = asString(text)
		}
	}
	return out
}

func decodeSubstitutes(raw any) map[string]*model.Substitute {
	byEvent, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*model.Substitute, len(byEvent))
	for event, v := range byEvent {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out[event] = &model.Substitute{
			Name:        asString(fields["newStudentName"]),
			Gender:      asString(fields["newStudentGender"]),
			DateOfBirth: asString(fields["newStudentDOB"]),
			Cohort:      asString(fields["newStudentGroup"]),
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
