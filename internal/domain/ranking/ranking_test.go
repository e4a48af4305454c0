package ranking_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/domain/ranking"
)

func TestGroupByDistrict(t *testing.T) {
	convey.Convey("Given individual entrants from three districts", t, func() {
		entrants := []*model.Entrant{
			{ID: "s1", FullName: "Aarav", District: "Pollachi", Attendance: model.Attended},
			{ID: "s2", FullName: "Nila", District: "Tirupur"},
			{ID: "s3", FullName: "Kavya", District: "Pollachi"},
			{ID: "s4", FullName: "Dhruv"},
		}

		groups := ranking.GroupByDistrict(entrants)

		convey.Convey("Then one group per district in first-seen order", func() {
			convey.So(len(groups), convey.ShouldEqual, 3)
			convey.So(groups[0].District, convey.ShouldEqual, "Pollachi")
			convey.So(groups[1].District, convey.ShouldEqual, "Tirupur")
			convey.So(groups[2].District, convey.ShouldEqual, "Unknown")
		})

		convey.Convey("Then members carry identity and a source pointer", func() {
			convey.So(len(groups[0].Members), convey.ShouldEqual, 2)
			convey.So(groups[0].Members[0].Name, convey.ShouldEqual, "Aarav")
			convey.So(groups[0].Members[0].Attendance, convey.ShouldEqual, model.Attended)
			convey.So(groups[0].Members[1].ID, convey.ShouldEqual, "s3")
			convey.So(groups[0].Members[0].Source, convey.ShouldEqual, entrants[0])
		})

		convey.Convey("Then the group id doubles as the district key", func() {
			convey.So(groups[2].ID, convey.ShouldEqual, "Unknown")
		})
	})

	convey.Convey("Given a member with no name or id", t, func() {
		groups := ranking.GroupByDistrict([]*model.Entrant{{District: "Valparai"}})

		convey.Convey("Then placeholders fill the member record", func() {
			convey.So(groups[0].Members[0].Name, convey.ShouldEqual, "Unknown")
			convey.So(groups[0].Members[0].ID, convey.ShouldEqual, "Unknown ID")
		})
	})

	convey.Convey("Given scored entrants", t, func() {
		score := map[string]map[string]map[string]any{
			"GROUP Art": {"j1": {"Creativity": 9.0}},
		}
		entrants := []*model.Entrant{
			{ID: "s1", District: "Pollachi", Score: score},
			{ID: "s2", District: "Pollachi"},
		}

		groups := ranking.GroupByDistrict(entrants)

		convey.Convey("Then the group inherits the first member's score block", func() {
			convey.So(groups[0].Score["GROUP Art"]["j1"]["Creativity"], convey.ShouldEqual, 9.0)
		})
	})
}

func TestSortLeaderboard(t *testing.T) {
	convey.Convey("Given entrants with mixed totals", t, func() {
		entrants := []*model.Entrant{
			{ID: "s3", Overall: 20},
			{ID: "s1", Overall: 28},
			{ID: "s2", Overall: 20},
		}

		ranking.SortLeaderboard(entrants)

		convey.Convey("Then higher totals rank first", func() {
			convey.So(entrants[0].ID, convey.ShouldEqual, "s1")
		})

		convey.Convey("Then ties break by ascending entrant id", func() {
			convey.So(entrants[1].ID, convey.ShouldEqual, "s2")
			convey.So(entrants[2].ID, convey.ShouldEqual, "s3")
		})
	})
}

func TestSortFinals(t *testing.T) {
	convey.Convey("Given tied finalists from different districts", t, func() {
		entrants := []*model.Entrant{
			{ID: "a", District: "Tirupur", Overall: 25},
			{ID: "b", District: "Pollachi", Overall: 25},
			{ID: "c", District: "Valparai", Overall: 30},
		}

		ranking.SortFinals(entrants)

		convey.Convey("Then ties break by ascending district", func() {
			convey.So(entrants[0].ID, convey.ShouldEqual, "c")
			convey.So(entrants[1].District, convey.ShouldEqual, "Pollachi")
			convey.So(entrants[2].District, convey.ShouldEqual, "Tirupur")
		})
	})
}

func TestTopN(t *testing.T) {
	convey.Convey("Given a ranked list of two", t, func() {
		entrants := []*model.Entrant{{ID: "a"}, {ID: "b"}}

		convey.Convey("Then asking for more returns everything", func() {
			convey.So(len(ranking.TopN(entrants, 5)), convey.ShouldEqual, 2)
		})

		convey.Convey("Then asking for fewer truncates", func() {
			top := ranking.TopN(entrants, 1)
			convey.So(len(top), convey.ShouldEqual, 1)
			convey.So(top[0].ID, convey.ShouldEqual, "a")
		})
	})
}

func TestMembersLine(t *testing.T) {
	convey.Convey("Given members across districts", t, func() {
		members := []model.Member{
			{ID: "s2", Name: "Nila", District: "Tirupur"},
			{ID: "s1", Name: "Aarav", District: "Pollachi"},
		}

		convey.Convey("Then the line sorts by district and joins with pipes", func() {
			convey.So(ranking.MembersLine(members), convey.ShouldEqual, "s1 - Aarav | s2 - Nila")
		})
	})
}
