package export_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/export"
)

type stubFetcher struct {
	entrants map[string][]*model.Entrant
	metas    map[string]*model.EventMetadata
	failing  map[string]bool
}

func (s *stubFetcher) JudgeEventData(_ context.Context, event string) ([]*model.Entrant, *model.EventMetadata, error) {
	if s.failing[event] {
		return nil, nil, errors.New("fetch failed")
	}
	return s.entrants[event], s.metas[event], nil
}

func TestFinalResults(t *testing.T) {
	convey.Convey("Given an individual event and a group event", t, func() {
		slokas := &model.EventMetadata{
			Name:     "Slokas",
			Kind:     model.KindIndividual,
			Criteria: []model.Criterion{{Name: "Memory", MaxMarks: 10}},
			JudgeIDs: []string{"j1"},
		}
		altar := &model.EventMetadata{
			Name:     "GROUP Altar",
			Kind:     model.KindGroup,
			Criteria: []model.Criterion{{Name: "Creativity", MaxMarks: 10}},
			JudgeIDs: []string{"j1"},
		}

		fetcher := &stubFetcher{
			metas: map[string]*model.EventMetadata{"Slokas": slokas, "GROUP Altar": altar},
			entrants: map[string][]*model.Entrant{
				"Slokas": {
					{ID: "s1", FullName: "Aarav", District: "Pollachi", Score: map[string]map[string]map[string]any{
						"Slokas": {"j1": {"Memory": 9.0}},
					}},
					{ID: "s2", FullName: "Nila", District: "Tirupur", Score: map[string]map[string]map[string]any{
						"Slokas": {"j1": {"Memory": 7.0}},
					}},
				},
				"GROUP Altar": {
					{ID: "s3", FullName: "Kavya", District: "Pollachi", Score: map[string]map[string]map[string]any{
						"GROUP Altar": {"j1": {"Creativity": 8.0}},
					}},
					{ID: "s4", FullName: "Dhruv", District: "Tirupur", Score: map[string]map[string]map[string]any{
						"GROUP Altar": {"j1": {"Creativity": 6.0}},
					}},
				},
			},
			failing: map[string]bool{},
		}

		convey.Convey("When both events fetch cleanly", func() {
			artifact, ok := export.FinalResults(context.Background(), []*model.EventMetadata{slokas, altar}, fetcher, nil)
			rows := splitRows(artifact)

			convey.Convey("Then the filename is fixed", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(artifact.Filename, convey.ShouldEqual, "Final_Results.csv")
			})

			convey.Convey("Then the header names the winners columns", func() {
				convey.So(rows[0], convey.ShouldEqual,
					"Event Type,Event Name,Rank,District,Student / Group Members,Student IDs,Total Score")
			})

			convey.Convey("Then individual winners list name and id", func() {
				convey.So(rows[1], convey.ShouldEqual, "Individual,Slokas,1,Pollachi,Aarav,s1,9.00")
				convey.So(rows[2], convey.ShouldEqual, "Individual,Slokas,2,Tirupur,Nila,s2,7.00")
			})

			convey.Convey("Then group winners list members with an empty id column", func() {
				convey.So(rows[3], convey.ShouldEqual, "Group,GROUP Altar,1,Pollachi,s3 - Kavya,,8.00")
				convey.So(rows[4], convey.ShouldEqual, "Group,GROUP Altar,2,Tirupur,s4 - Dhruv,,6.00")
			})
		})

		convey.Convey("When the first event's fetch fails", func() {
			fetcher.failing["Slokas"] = true
			artifact, ok := export.FinalResults(context.Background(), []*model.EventMetadata{slokas, altar}, fetcher, nil)
			rows := splitRows(artifact)

			convey.Convey("Then later events still contribute", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(len(rows), convey.ShouldEqual, 3)
				convey.So(rows[1], convey.ShouldStartWith, "Group,GROUP Altar,1,")
			})
		})

		convey.Convey("When every event fails", func() {
			fetcher.failing["Slokas"] = true
			fetcher.failing["GROUP Altar"] = true
			_, ok := export.FinalResults(context.Background(), []*model.EventMetadata{slokas, altar}, fetcher, nil)

			convey.Convey("Then there is nothing to export", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
