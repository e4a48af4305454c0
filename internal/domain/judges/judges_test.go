package judges_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/domain/judges"
	"github.com/talika/judgeboard/internal/domain/model"
)

func TestFallback(t *testing.T) {
	convey.Convey("Given a seat count", t, func() {
		convey.Convey("Then generated names are numbered from one", func() {
			convey.So(judges.Fallback(3), convey.ShouldResemble, []string{"Judge 1", "Judge 2", "Judge 3"})
		})

		convey.Convey("Then zero seats yields an empty list", func() {
			convey.So(judges.Fallback(0), convey.ShouldBeEmpty)
		})
	})
}

func TestResolve(t *testing.T) {
	convey.Convey("Given an ordering document with unsorted entries", t, func() {
		mapping := &model.JudgeOrderMapping{
			Entries: []model.JudgeOrderEntry{
				{Name: "Ann", Order: 2},
				{Name: "Bo", Order: 1},
			},
		}

		convey.Convey("Then names align to seats by ascending order value", func() {
			convey.So(judges.Resolve(mapping, 2), convey.ShouldResemble, []string{"Bo", "Ann"})
		})
	})

	convey.Convey("Given a seat with no matching order value", t, func() {
		mapping := &model.JudgeOrderMapping{
			Entries: []model.JudgeOrderEntry{
				{Name: "Ann", Order: 1},
				{Name: "Cy", Order: 3},
			},
		}

		convey.Convey("Then the gap resolves to Unknown", func() {
			convey.So(judges.Resolve(mapping, 3), convey.ShouldResemble, []string{"Ann", "Unknown", "Cy"})
		})
	})

	convey.Convey("Given an expected judge count on the document", t, func() {
		mapping := &model.JudgeOrderMapping{
			ExpectedJudgeCount: 2,
			Entries: []model.JudgeOrderEntry{
				{Name: "Ann", Order: 1},
				{Name: "Bo", Order: 2},
				{Name: "Cy", Order: 3},
			},
		}

		convey.Convey("Then the document count wins over the caller's", func() {
			convey.So(judges.Resolve(mapping, 5), convey.ShouldResemble, []string{"Ann", "Bo"})
		})
	})

	convey.Convey("Given no ordering document", t, func() {
		convey.Convey("Then resolution falls back to generated names", func() {
			convey.So(judges.Resolve(nil, 2), convey.ShouldResemble, []string{"Judge 1", "Judge 2"})
		})
	})

	convey.Convey("Given a document with no entries", t, func() {
		convey.Convey("Then resolution falls back to generated names", func() {
			got := judges.Resolve(&model.JudgeOrderMapping{}, 1)
			convey.So(got, convey.ShouldResemble, []string{"Judge 1"})
		})
	})
}

func TestClean(t *testing.T) {
	convey.Convey("Given resolved names of varying quality", t, func() {
		names := []string{"  Anita Raman ", "Unknown", "ab", ""}

		convey.Convey("Then weak names are replaced seat by seat", func() {
			got := judges.Clean(names, 4)
			convey.So(got, convey.ShouldResemble, []string{"Anita Raman", "Judge 2", "Judge 3", "Judge 4"})
		})
	})

	convey.Convey("Given fewer names than seats", t, func() {
		convey.Convey("Then extra seats get generated names", func() {
			got := judges.Clean([]string{"Anita"}, 3)
			convey.So(got, convey.ShouldResemble, []string{"Anita", "Judge 2", "Judge 3"})
		})
	})
}
