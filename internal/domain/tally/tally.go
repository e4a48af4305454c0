// Package tally computes per-judge and overall totals for entrants.
package tally

import (
	"math"
	"strconv"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

// Recompute derives e.JudgeTotals and e.Overall from raw scores for one
// event. Totals are always rebuilt from scratch so running it again on an
// already-tallied entrant yields identical values.
//
// The overall value is a sum across judges, not an average, whatever the
// console's column label says.
func Recompute(e *model.Entrant, event string, criteria, judgeIDs []string) {
	totals := make(map[string]float64, len(judgeIDs))
	for _, judgeID := range judgeIDs {
		totals[judgeID] = 0
	}

	for _, criterion := range criteria {
		for _, judgeID := range judgeIDs {
			totals[judgeID] += Number(cell(e, event, judgeID, criterion))
		}
	}

	var overall float64
	for _, judgeID := range judgeIDs {
		overall += totals[judgeID]
	}

	e.JudgeTotals = totals
	e.Overall = overall
}

// RecomputeAll applies Recompute to every entrant.
func RecomputeAll(entrants []*model.Entrant, event string, criteria, judgeIDs []string) {
	for _, e := range entrants {
		Recompute(e, event, criteria, judgeIDs)
	}
}

// OrderedTotals returns judge totals in judgeIDs order. The positional
// alignment with resolved judge names depends on this.
func OrderedTotals(e *model.Entrant, judgeIDs []string) []float64 {
	out := make([]float64, len(judgeIDs))
	for i, judgeID := range judgeIDs {
		out[i] = e.JudgeTotals[judgeID]
	}
	return out
}

// Number coerces a raw score cell to float64. Unparseable, NaN and infinite
// values become 0; a bad mark never fails an aggregation.
func Number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func cell(e *model.Entrant, event, judgeID, criterion string) any {
	judges, ok := e.Score[event]
	if !ok {
		return nil
	}
	cells, ok := judges[judgeID]
	if !ok {
		return nil
	}
	return cells[criterion]
}
