package export_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/domain/model"
	"github.com/talika/judgeboard/internal/export"
)

func TestCertificateIndividual(t *testing.T) {
	convey.Convey("Given seven ranked participants", t, func() {
		var ranked []*model.Entrant
		for i := 0; i < 7; i++ {
			ranked = append(ranked, &model.Entrant{
				ID:       fmt.Sprintf("SLTS-%04d", i+1),
				FullName: fmt.Sprintf("Student %d", i+1),
				District: "Pollachi",
				Overall:  float64(30 - i),
			})
		}

		artifact, ok := export.Certificate("Bhajans", model.KindIndividual, ranked)
		rows := splitRows(artifact)

		convey.Convey("Then only the top five make the sheet", func() {
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(len(rows), convey.ShouldEqual, 6)
		})

		convey.Convey("Then the filename is fixed for the certificate tooling", func() {
			convey.So(artifact.Filename, convey.ShouldEqual, "Bhajans_top5_cert_export.csv")
		})

		convey.Convey("Then prioritized columns lead and the rest follow alphabetically", func() {
			convey.So(rows[0], convey.ShouldEqual,
				"eventName,Rank,studentFullName,studentId,district,OverallTotal,"+
					"needsDrop,needsPickup,needsReturnFoodPacket")
		})

		convey.Convey("Then ranks run one through five with formatted totals", func() {
			convey.So(rows[1], convey.ShouldStartWith, "Bhajans,1,Student 1,SLTS-0001,Pollachi,30.00")
			convey.So(rows[5], convey.ShouldStartWith, "Bhajans,5,Student 5,SLTS-0005,Pollachi,26.00")
		})
	})

	convey.Convey("Given a winner with a substitute on file", t, func() {
		ranked := []*model.Entrant{{
			ID:       "SLTS-0001",
			FullName: "Original Name",
			Gender:   "Male",
			Substitute: map[string]*model.Substitute{
				"Slokas": {Name: "Stand In", Gender: "Female"},
			},
			Overall: 18,
		}}

		artifact, ok := export.Certificate("Slokas", model.KindIndividual, ranked)
		rows := splitRows(artifact)

		convey.Convey("Then substitute details replace the registration's", func() {
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(rows[1], convey.ShouldContainSubstring, "Stand In")
			convey.So(rows[1], convey.ShouldContainSubstring, "Female")
			convey.So(rows[1], convey.ShouldNotContainSubstring, "Original Name")
		})
	})

	convey.Convey("Given a participant registered for several events", t, func() {
		ranked := []*model.Entrant{{
			ID:               "SLTS-0001",
			FullName:         "Aarav",
			RegisteredEvents: []string{"Bhajans", "Slokas"},
			Overall:          12,
		}}

		artifact, _ := export.Certificate("Bhajans", model.KindIndividual, ranked)

		convey.Convey("Then the event list cell is quoted with semicolon separators", func() {
			convey.So(string(artifact.Data), convey.ShouldContainSubstring, `"Bhajans; Slokas"`)
		})
	})

	convey.Convey("Given no ranked participants", t, func() {
		_, ok := export.Certificate("Bhajans", model.KindIndividual, nil)

		convey.Convey("Then there is nothing to export", func() {
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestCertificateGroup(t *testing.T) {
	convey.Convey("Given two ranked district groups", t, func() {
		memberA := &model.Entrant{ID: "s1", FullName: "Aarav", District: "Pollachi", Cohort: "Group 2"}
		memberB := &model.Entrant{ID: "s2", FullName: "Nila", District: "Pollachi"}
		memberC := &model.Entrant{ID: "s3", FullName: "Kavya", District: "Tirupur"}

		ranked := []*model.Entrant{
			{
				ID: "Pollachi", District: "Pollachi", Overall: 28,
				Members: []model.Member{
					{ID: "s1", Name: "Aarav", District: "Pollachi", Source: memberA},
					{ID: "s2", Name: "Nila", District: "Pollachi", Source: memberB},
				},
			},
			{
				ID: "Tirupur", District: "Tirupur", Overall: 24,
				Members: []model.Member{
					{ID: "s3", Name: "Kavya", District: "Tirupur", Source: memberC},
				},
			},
		}

		artifact, ok := export.Certificate("GROUP Altar", model.KindGroup, ranked)
		rows := splitRows(artifact)

		convey.Convey("Then every member gets a row tagged with the group rank", func() {
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(len(rows), convey.ShouldEqual, 4)
			convey.So(rows[1], convey.ShouldStartWith, "GROUP Altar,1,Aarav,s1,Pollachi")
			convey.So(rows[2], convey.ShouldStartWith, "GROUP Altar,1,Nila,s2,Pollachi")
			convey.So(rows[3], convey.ShouldStartWith, "GROUP Altar,2,Kavya,s3,Tirupur")
		})

		convey.Convey("Then member rows share the group total", func() {
			convey.So(rows[1], convey.ShouldContainSubstring, "28.00")
			convey.So(rows[2], convey.ShouldContainSubstring, "28.00")
			convey.So(rows[3], convey.ShouldContainSubstring, "24.00")
		})

		convey.Convey("Then the group priority ordering leads the header", func() {
			convey.So(strings.HasPrefix(rows[0], "eventName,Rank,studentFullName,studentId,district,studentGroup,OverallTotal"), convey.ShouldBeTrue)
		})
	})
}
