package export_test

import (
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/export"
)

func TestEscape(t *testing.T) {
	convey.Convey("Given CSV field values", t, func() {
		convey.Convey("Then plain values pass through untouched", func() {
			convey.So(export.Escape("Pollachi"), convey.ShouldEqual, "Pollachi")
			convey.So(export.Escape(""), convey.ShouldEqual, "")
		})

		convey.Convey("Then a comma triggers quoting", func() {
			convey.So(export.Escape("a,b"), convey.ShouldEqual, `"a,b"`)
		})

		convey.Convey("Then quotes are doubled inside the wrapper", func() {
			convey.So(export.Escape(`He said "hi", once`), convey.ShouldEqual, `"He said ""hi"", once"`)
		})

		convey.Convey("Then a newline triggers quoting", func() {
			convey.So(export.Escape("line1\nline2"), convey.ShouldEqual, "\"line1\nline2\"")
		})
	})
}

func TestDocumentLayout(t *testing.T) {
	convey.Convey("Given a minimal individual leaderboard", t, func() {
		meta := &model.EventMetadata{
			Name:     "Bhajans",
			Kind:     model.KindIndividual,
			Criteria: []model.Criterion{{Name: "Shruthi", MaxMarks: 10}},
			JudgeIDs: []string{"j1"},
		}
		e := &model.Entrant{
			ID:       "SLTS-0001",
			FullName: "Aarav Pranav",
			District: "Pollachi",
			Score: map[string]map[string]map[string]any{
				"Bhajans": {"j1": {"Shruthi": 7.5}},
			},
			Comment:     map[string]map[string]string{"Bhajans": {"j1": ""}},
			JudgeTotals: map[string]float64{"j1": 7.5},
			Overall:     7.5,
		}

		artifact := export.IndividualLeaderboard("Bhajans", meta, []*model.Entrant{e}, []string{"Anita"})
		data := string(artifact.Data)

		convey.Convey("Then the stream starts with a UTF-8 BOM", func() {
			convey.So(strings.HasPrefix(data, "\uFEFF"), convey.ShouldBeTrue)
		})

		convey.Convey("Then rows join with CRLF and nothing trails the last row", func() {
			convey.So(strings.Count(data, "\r\n"), convey.ShouldEqual, 1)
			convey.So(strings.HasSuffix(data, "\r\n"), convey.ShouldBeFalse)
			convey.So(strings.HasSuffix(data, "\n"), convey.ShouldBeFalse)
		})

		convey.Convey("Then the content type is CSV", func() {
			convey.So(artifact.MIME, convey.ShouldEqual, "text/csv;charset=utf-8")
		})
	})
}
