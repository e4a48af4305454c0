package export

import (
	"context"
	"strconv"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/domain/ranking"
	"github.com/talika/judgeboard/internal/domain/tally"
	"github.com/talika/judgeboard/pkg/logger"
	"github.com/talika/judgeboard/pkg/metrics"
)

// finalsTopN is how many ranked entrants each event contributes.
const finalsTopN = 3

// FinalsFilename is fixed for compatibility with the results tooling.
const FinalsFilename = "Final_Results.csv"

// EventFetcher supplies fresh score data for one event. The finals export
// re-aggregates from raw records and never reuses on-screen state.
type EventFetcher interface {
	JudgeEventData(ctx context.Context, event string) ([]*model.Entrant, *model.EventMetadata, error)
}

// FinalResults walks every event in input order, aggregates it fresh and
// appends its top 3 entrants (or district groups). An event whose fetch
// fails is skipped whole; later events still contribute. Returns ok=false
// when no event produced a row.
func FinalResults(ctx context.Context, events []*model.EventMetadata, fetch EventFetcher, log logger.Logger) (Artifact, bool) {
	rows := [][]string{{
		"Event Type", "Event Name", "Rank", "District",
		"Student / Group Members", "Student IDs", "Total Score",
	}}

	for _, event := range events {
		entrants, meta, err := fetch.JudgeEventData(ctx, event.Name)
		if err != nil || meta == nil {
			metrics.RecordFinalsEventSkipped()
			if log != nil {
				log.Warn(ctx, "skipping event in final results",
					logger.String("event", event.Name), logger.Error(err))
			}
			continue
		}

		criteria := meta.CriteriaNames()

		if meta.Kind == model.KindGroup {
			groups := ranking.GroupByDistrict(entrants)
			tally.RecomputeAll(groups, meta.Name, criteria, meta.JudgeIDs)
			ranking.SortFinals(groups)
			for i, g := range ranking.TopN(groups, finalsTopN) {
				rows = append(rows, []string{
					"Group",
					meta.Name,
					strconv.Itoa(i + 1),
					g.District,
					ranking.MembersLine(g.Members),
					"",
					formatTotal(g.Overall),
				})
			}
			continue
		}

		tally.RecomputeAll(entrants, meta.Name, criteria, meta.JudgeIDs)
		ranked := make([]*model.Entrant, len(entrants))
		copy(ranked, entrants)
		ranking.SortFinals(ranked)
		for i, e := range ranking.TopN(ranked, finalsTopN) {
			rows = append(rows, []string{
				"Individual",
				meta.Name,
				strconv.Itoa(i + 1),
				orDash(e.District),
				orDash(e.FullName),
				orDash(e.ID),
				formatTotal(e.Overall),
			})
		}
	}

	if len(rows) == 1 {
		return Artifact{}, false
	}

	return Artifact{
		Filename: FinalsFilename,
		MIME:     MIMECSV,
		Data:     document(rows),
	}, true
}
