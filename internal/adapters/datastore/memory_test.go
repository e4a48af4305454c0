package datastore_test

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/talika/judgeboard/internal/adapters/datastore"
	"github.com/talika/judgeboard/internal/domain/model"
)

func seedStore() *datastore.MemoryStore {
	return datastore.NewMemoryStore(datastore.WithFixtures(datastore.Fixtures{
		Registrations: []*model.Entrant{
			{
				ID: "s1", FullName: "Aarav", District: "Pollachi", Cohort: "Group 1",
				ModeOfTravel:     "Bus",
				RegisteredEvents: []string{"Bhajans"},
				Score: map[string]map[string]map[string]any{
					"Bhajans": {"j1": {"Shruthi": 7.0}},
				},
			},
			{
				ID: "s2", FullName: "Nila", District: "Tirupur", Cohort: "Group 1",
				ModeOfTravel:     "Bus",
				RegisteredEvents: []string{"Bhajans", "Slokas"},
			},
			{
				ID: "s3", FullName: "Kavya", District: "Pollachi",
			},
		},
		Events: []*model.EventMetadata{
			{
				Name:     "Bhajans",
				Kind:     model.KindIndividual,
				Criteria: []model.Criterion{{Name: "Shruthi", MaxMarks: 10}},
				JudgeIDs: []string{"j1"},
				Cohorts:  []string{"Group 1"},
			},
			{
				Name:     "GROUP Altar",
				Criteria: []model.Criterion{{Name: "Creativity", MaxMarks: 10}},
				JudgeIDs: []string{"j1"},
			},
		},
		JudgeOrder: map[string]*model.JudgeOrderMapping{
			"Bhajans": {
				Entries:            []model.JudgeOrderEntry{{Name: "Anita", Order: 1}},
				ExpectedJudgeCount: 1,
			},
		},
	}))
}

func TestMemoryStoreRegistrationData(t *testing.T) {
	convey.Convey("Given a seeded in-memory store", t, func() {
		store := seedStore()
		ctx := context.Background()

		entrants, facets, err := store.RegistrationData(ctx)

		convey.Convey("Then every registration comes back", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(entrants), convey.ShouldEqual, 3)
		})

		convey.Convey("Then facets are distinct and in first-seen order", func() {
			convey.So(facets.Districts, convey.ShouldResemble, []string{"Pollachi", "Tirupur"})
			convey.So(facets.Cohorts, convey.ShouldResemble, []string{"Group 1"})
			convey.So(facets.Events, convey.ShouldResemble, []string{"Bhajans", "Slokas"})
			convey.So(facets.TravelModes, convey.ShouldResemble, []string{"Bus"})
		})

		convey.Convey("Then mutating a returned entrant leaves the store untouched", func() {
			entrants[0].Score["Bhajans"]["j1"]["Shruthi"] = 1.0
			again, _, err := store.RegistrationData(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(again[0].Score["Bhajans"]["j1"]["Shruthi"], convey.ShouldEqual, 7.0)
		})

		convey.Convey("Then stored totals are never trusted", func() {
			convey.So(entrants[0].JudgeTotals, convey.ShouldBeNil)
			convey.So(entrants[0].Overall, convey.ShouldEqual, 0)
		})
	})
}

func TestMemoryStoreEvents(t *testing.T) {
	convey.Convey("Given a seeded in-memory store", t, func() {
		store := seedStore()

		events, cohorts, err := store.Events(context.Background())

		convey.Convey("Then both events come back with cohort tags", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(events), convey.ShouldEqual, 2)
			convey.So(cohorts, convey.ShouldResemble, []string{"Group 1"})
		})

		convey.Convey("Then the legacy name marker fills a missing kind", func() {
			convey.So(events[1].Kind, convey.ShouldEqual, model.KindGroup)
		})
	})
}

func TestMemoryStoreJudgeEventData(t *testing.T) {
	convey.Convey("Given a seeded in-memory store", t, func() {
		store := seedStore()
		ctx := context.Background()

		convey.Convey("When fetching a known event", func() {
			entrants, meta, err := store.JudgeEventData(ctx, "Bhajans")

			convey.Convey("Then only registered entrants come back", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(meta.Name, convey.ShouldEqual, "Bhajans")
				convey.So(len(entrants), convey.ShouldEqual, 2)
				convey.So(entrants[0].ID, convey.ShouldEqual, "s1")
				convey.So(entrants[1].ID, convey.ShouldEqual, "s2")
			})
		})

		convey.Convey("When fetching an unknown event", func() {
			_, _, err := store.JudgeEventData(ctx, "Elocution")

			convey.Convey("Then the error is ErrNotFound", func() {
				convey.So(err, convey.ShouldWrap, datastore.ErrNotFound)
			})
		})
	})
}

func TestMemoryStoreJudgeOrderMapping(t *testing.T) {
	convey.Convey("Given a seeded in-memory store", t, func() {
		store := seedStore()
		ctx := context.Background()

		convey.Convey("When the event has an ordering document", func() {
			mapping, err := store.JudgeOrderMapping(ctx, "Bhajans")

			convey.Convey("Then the document comes back intact", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(mapping.ExpectedJudgeCount, convey.ShouldEqual, 1)
				convey.So(mapping.Entries[0].Name, convey.ShouldEqual, "Anita")
			})
		})

		convey.Convey("When the event has none", func() {
			_, err := store.JudgeOrderMapping(ctx, "GROUP Altar")

			convey.Convey("Then the error is ErrNotFound", func() {
				convey.So(err, convey.ShouldWrap, datastore.ErrNotFound)
			})
		})
	})
}

func TestMemoryStoreUpdateCriteria(t *testing.T) {
	convey.Convey("Given a seeded in-memory store", t, func() {
		store := seedStore()
		ctx := context.Background()

		convey.Convey("When replacing an event's criteria", func() {
			next := []model.Criterion{
				{Name: "Raga", MaxMarks: 10},
				{Name: "Bhava", MaxMarks: 5},
			}
			err := store.UpdateCriteria(ctx, "Bhajans", next)

			convey.Convey("Then subsequent reads see the new list in order", func() {
				convey.So(err, convey.ShouldBeNil)
				_, meta, err := store.JudgeEventData(ctx, "Bhajans")
				convey.So(err, convey.ShouldBeNil)
				convey.So(meta.CriteriaNames(), convey.ShouldResemble, []string{"Raga", "Bhava"})
			})
		})

		convey.Convey("When the event does not exist", func() {
			err := store.UpdateCriteria(ctx, "Elocution", []model.Criterion{{Name: "Voice", MaxMarks: 5}})

			convey.Convey("Then the error is ErrNotFound", func() {
				convey.So(err, convey.ShouldWrap, datastore.ErrNotFound)
			})
		})
	})
}
