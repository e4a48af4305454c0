// Package ranking groups entrants into district teams and orders
// leaderboards deterministically.
package ranking

import (
	"sort"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

// Placeholder identity values for incomplete member records.
const (
	unknownName = "Unknown"
	unknownID   = "Unknown ID"
)

// GroupByDistrict partitions individual entrants into one synthesized group
// entrant per district, in first-seen order. Missing districts collapse
// into the "Unknown" group. The group inherits the first member's score and
// comment blocks as representative; members of a group share the same
// recorded scores for the event by construction of the input.
func GroupByDistrict(entrants []*model.Entrant) []*model.Entrant {
	var order []string
	byDistrict := make(map[string]*model.Entrant)

	for _, e := range entrants {
		key := e.DistrictKey()
		group, ok := byDistrict[key]
		if !ok {
			group = &model.Entrant{
				ID:         key,
				District:   key,
				Score:      e.Score,
				Comment:    e.Comment,
				Substitute: e.Substitute,
			}
			byDistrict[key] = group
			order = append(order, key)
		}

		name := e.FullName
		if name == "" {
			name = unknownName
		}
		id := e.ID
		if id == "" {
			id = unknownID
		}
		group.Members = append(group.Members, model.Member{
			ID:         id,
			Name:       name,
			District:   key,
			Attendance: e.Attendance,
			Source:     e,
		})
	}

	groups := make([]*model.Entrant, len(order))
	for i, key := range order {
		groups[i] = byDistrict[key]
	}
	return groups
}

// SortLeaderboard orders entrants for a per-event leaderboard: overall
// total descending, ties broken by ascending entrant ID. The tie-break is a
// deliberate choice; the upstream console relied on incidental sort
// stability.
func SortLeaderboard(entrants []*model.Entrant) {
	sort.SliceStable(entrants, func(i, j int) bool {
		if entrants[i].Overall != entrants[j].Overall {
			return entrants[i].Overall > entrants[j].Overall
		}
		return entrants[i].ID < entrants[j].ID
	})
}

// SortFinals orders entrants for the cross-event final results: overall
// total descending, ties broken by ascending district name.
func SortFinals(entrants []*model.Entrant) {
	sort.SliceStable(entrants, func(i, j int) bool {
		if entrants[i].Overall != entrants[j].Overall {
			return entrants[i].Overall > entrants[j].Overall
		}
		return entrants[i].District < entrants[j].District
	})
}

// TopN returns the first n entrants of an already-ranked list without
// re-sorting.
func TopN(entrants []*model.Entrant, n int) []*model.Entrant {
	if n > len(entrants) {
		n = len(entrants)
	}
	return entrants[:n]
}

// MembersLine renders a group's member list for the finals export: sorted
// ascending by district, "{id} - {name}" joined with " | ".
func MembersLine(members []model.Member) string {
	sorted := make([]model.Member, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].District < sorted[j].District
	})

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = m.ID + " - " + m.Name
	}
	return strings.Join(parts, " | ")
}
