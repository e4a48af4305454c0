// Package scorebook fills in missing score and comment cells so downstream
// consumers can assume every judge x criterion pair is present.
package scorebook

import (
	"github.com/talika/judgeboard/internal/domain/model"
)

// Normalize ensures e.Score[event][judge][criterion] exists for every pair,
// defaulting absent or falsy cells to 0, and e.Comment[event][judge] exists,
// defaulting to commentDefault. Existing non-falsy values are left alone.
//
// A legitimate score of 0 is indistinguishable from "missing" here; that is
// inherited behavior the rest of the pipeline relies on.
func Normalize(e *model.Entrant, event string, criteria, judgeIDs []string, commentDefault string) {
	if e.Score == nil {
		e.Score = make(map[string]map[string]map[string]any)
	}
	if e.Score[event] == nil {
		e.Score[event] = make(map[string]map[string]any, len(judgeIDs))
	}
	for _, judgeID := range judgeIDs {
		if e.Score[event][judgeID] == nil {
			e.Score[event][judgeID] = make(map[string]any, len(criteria))
		}
		for _, criterion := range criteria {
			if isFalsy(e.Score[event][judgeID][criterion]) {
				e.Score[event][judgeID][criterion] = float64(0)
			}
		}
	}

	if e.Comment == nil {
		e.Comment = make(map[string]map[string]string)
	}
	if e.Comment[event] == nil {
		e.Comment[event] = make(map[string]string, len(judgeIDs))
	}
	for _, judgeID := range judgeIDs {
		if e.Comment[event][judgeID] == "" {
			e.Comment[event][judgeID] = commentDefault
		}
	}
}

// NormalizeAll applies Normalize to every entrant in place.
func NormalizeAll(entrants []*model.Entrant, event string, criteria, judgeIDs []string, commentDefault string) {
	for _, e := range entrants {
		Normalize(e, event, criteria, judgeIDs, commentDefault)
	}
}

// isFalsy mirrors the upstream store's loose cell semantics: nil, empty
// string and numeric zero all count as "not recorded".
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int:
		return t == 0
	case int32:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}
