// Package judges resolves opaque judge identifiers to display names using
// the external ordering document, with deterministic fallbacks.
package judges

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

// unresolvedName marks a seat the ordering document never filled.
const unresolvedName = "Unknown"

// minNameLength is the shortest trimmed name the export layer accepts
// before falling back to a generated one.
const minNameLength = 3

// Fallback synthesizes n generic display names: "Judge 1" .. "Judge n".
func Fallback(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Judge %d", i+1)
	}
	return names
}

// Resolve maps seat positions to display names from the ordering document.
// Entries are sorted ascending by order and matched positionally: seat i
// takes the entry whose order equals i+1, or "Unknown" when no entry has
// that rank. The document is not aligned to judge identifiers, only to
// ascending order values.
//
// A nil or empty mapping yields Fallback(judgeCount).
func Resolve(mapping *model.JudgeOrderMapping, judgeCount int) []string {
	if mapping == nil || len(mapping.Entries) == 0 {
		return Fallback(judgeCount)
	}

	entries := make([]model.JudgeOrderEntry, len(mapping.Entries))
	copy(entries, mapping.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})

	count := mapping.ExpectedJudgeCount
	if count <= 0 {
		count = judgeCount
	}

	names := make([]string, 0, count)
	for rank := 1; rank <= count; rank++ {
		name := unresolvedName
		for _, entry := range entries {
			if entry.Order == rank {
				if entry.Name != "" {
					name = entry.Name
				}
				break
			}
		}
		names = append(names, name)
	}
	return names
}

// Clean applies the export-time fallback layer: for each of n seats, a
// resolved name that is missing, literally "Unknown", or shorter than 3
// trimmed characters is replaced by "Judge {i+1}". Applied even when
// resolution succeeded.
func Clean(names []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		var name string
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name == "" || name == unresolvedName || len(name) < minNameLength {
			out[i] = fmt.Sprintf("Judge %d", i+1)
			continue
		}
		out[i] = name
	}
	return out
}
