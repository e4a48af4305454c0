package export

import (
	"strings"

	"github.com/talika/judgeboard/internal/domain/judges"
	"github.com/talika/judgeboard/internal/domain/model"
)

// scoreColumns appends one column per criterion per judge, criterion-major
// and judge-minor, reading normalized cells in canonical judge order.
func scoreColumns(row []string, e *model.Entrant, event string, criteria, judgeIDs []string) []string {
	for _, criterion := range criteria {
		for _, judgeID := range judgeIDs {
			row = append(row, cellString(e.Score[event][judgeID][criterion]))
		}
	}
	return row
}

// totalColumns appends per-judge totals (2 decimals) followed by the
// overall total.
func totalColumns(row []string, e *model.Entrant, judgeIDs []string) []string {
	for _, judgeID := range judgeIDs {
		row = append(row, formatTotal(e.JudgeTotals[judgeID]))
	}
	return append(row, formatTotal(e.Overall))
}

// commentColumns appends per-judge comments, whitespace-collapsed, with
// "-" standing in for anything empty.
func commentColumns(row []string, e *model.Entrant, event string, judgeIDs []string) []string {
	for _, judgeID := range judgeIDs {
		comment := e.Comment[event][judgeID]
		if comment == "" {
			comment = "-"
		}
		row = append(row, collapseSpace(comment))
	}
	return row
}

// leaderboardHeader builds the shared criterion/total/comment column tail
// labeled with cleaned judge names.
func leaderboardHeader(identity []string, criteria, judgeNames []string) []string {
	header := append([]string{}, identity...)
	for _, criterion := range criteria {
		for _, judgeName := range judgeNames {
			header = append(header, criterion+" ("+judgeName+")")
		}
	}
	for _, judgeName := range judgeNames {
		header = append(header, "Total ("+judgeName+")")
	}
	header = append(header, "Overall Total")
	for _, judgeName := range judgeNames {
		header = append(header, "Comment ("+judgeName+")")
	}
	return header
}

// IndividualLeaderboard renders the full per-participant leaderboard for an
// individual event. Entrants must already be ranked; judgeNames are the
// resolver output and go through the export-time fallback layer here.
func IndividualLeaderboard(event string, meta *model.EventMetadata, entrants []*model.Entrant, judgeNames []string) Artifact {
	criteria := meta.CriteriaNames()
	names := judges.Clean(judgeNames, len(meta.JudgeIDs))

	rows := [][]string{leaderboardHeader(
		[]string{"Student Name", "Student ID", "District", "Samithi", "Attendance"},
		criteria, names,
	)}

	for _, e := range entrants {
		name := e.FullName
		if sub := e.SubstituteFor(meta.Name); sub != nil {
			name = sub.Name
		}
		row := []string{
			orDash(name),
			orDash(e.ID),
			orDash(e.District),
			orDash(e.Samithi),
			attendanceLabel(e.Attendance),
		}
		row = scoreColumns(row, e, event, criteria, meta.JudgeIDs)
		row = totalColumns(row, e, meta.JudgeIDs)
		row = commentColumns(row, e, event, meta.JudgeIDs)
		rows = append(rows, row)
	}

	return Artifact{
		Filename: event + "_leaderboard.csv",
		MIME:     MIMECSV,
		Data:     document(rows),
	}
}

// GroupLeaderboard renders the full per-district leaderboard for a group
// event. Groups must already be ranked.
func GroupLeaderboard(event string, meta *model.EventMetadata, groups []*model.Entrant, judgeNames []string) Artifact {
	criteria := meta.CriteriaNames()
	names := judges.Clean(judgeNames, len(meta.JudgeIDs))

	rows := [][]string{leaderboardHeader(
		[]string{"District", "Student IDs", "Student Names", "Attendance"},
		criteria, names,
	)}

	for _, g := range groups {
		ids := make([]string, len(g.Members))
		memberNames := make([]string, len(g.Members))
		attendance := make([]string, len(g.Members))
		for i, m := range g.Members {
			ids[i] = m.ID
			memberNames[i] = m.Name
			attendance[i] = attendanceLabel(m.Attendance)
		}

		row := []string{
			g.DistrictKey(),
			strings.Join(ids, "; "),
			strings.Join(memberNames, "; "),
			strings.Join(attendance, "; "),
		}
		row = scoreColumns(row, g, event, criteria, meta.JudgeIDs)
		row = totalColumns(row, g, meta.JudgeIDs)
		row = commentColumns(row, g, event, meta.JudgeIDs)
		rows = append(rows, row)
	}

	return Artifact{
		Filename: event + "_group_leaderboard.csv",
		MIME:     MIMECSV,
		Data:     document(rows),
	}
}
