// Package seed generates fixture data for local runs and load testing.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/talika/judgeboard/internal/adapters/datastore"
	"github.com/talika/judgeboard/internal/domain/model"
)

// Config controls fixture generation.
type Config struct {
	Students   int
	OutputFile string
	Seed       int64
}

var districts = []string{
	"Coimbatore North", "Coimbatore South", "Pollachi", "Tirupur",
	"Mettupalayam", "Valparai",
}

var samithis = []string{
	"RS Puram", "Ganapathy", "Saibaba Colony", "Peelamedu", "Singanallur",
}

var cohorts = []string{"Group 1", "Group 2", "Group 3"}

var firstNames = []string{
	"Aarav", "Ananya", "Dhruv", "Ishita", "Kavya", "Madhav", "Nila",
	"Pranav", "Sahana", "Vikram",
}

var events = []*model.EventMetadata{
	{
		Name: "Bhajans",
		Kind: model.KindIndividual,
		Criteria: []model.Criterion{
			{Name: "Shruthi", MaxMarks: 10},
			{Name: "Raga", MaxMarks: 10},
			{Name: "Bhava", MaxMarks: 5},
		},
		Cohorts: cohorts,
	},
	{
		Name: "Slokas",
		Kind: model.KindIndividual,
		Criteria: []model.Criterion{
			{Name: "Pronunciation", MaxMarks: 10},
			{Name: "Memory", MaxMarks: 10},
		},
		Cohorts: cohorts[:2],
	},
	{
		Name: "GROUP Altar Decoration",
		Kind: model.KindGroup,
		Criteria: []model.Criterion{
			{Name: "Creativity", MaxMarks: 10},
			{Name: "Neatness", MaxMarks: 5},
		},
		Cohorts: cohorts,
	},
}

// Run writes a fixtures JSON document to cfg.OutputFile.
func Run(cfg *Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	fixtures := datastore.Fixtures{
		JudgeOrder: make(map[string]*model.JudgeOrderMapping),
	}

	for _, meta := range events {
		judgeCount := 2 + rng.Intn(2)
		mapping := &model.JudgeOrderMapping{ExpectedJudgeCount: judgeCount}
		for j := 0; j < judgeCount; j++ {
			id := uuid.NewString()
			meta.JudgeIDs = append(meta.JudgeIDs, id)
			meta.JudgeEmails = append(meta.JudgeEmails,
				fmt.Sprintf("judge.%s.%d@slts.cbe", shortName(meta.Name), j+1))
			mapping.Entries = append(mapping.Entries, model.JudgeOrderEntry{
				Name:  pick(rng, firstNames) + " " + pick(rng, firstNames),
				Order: j + 1,
			})
		}
		fixtures.Events = append(fixtures.Events, meta)
		fixtures.JudgeOrder[meta.Name] = mapping
	}

	for i := 0; i < cfg.Students; i++ {
		e := &model.Entrant{
			ID:       fmt.Sprintf("SLTS-%04d", i+1),
			FullName: pick(rng, firstNames) + " " + pick(rng, firstNames),
			District: pick(rng, districts),
			Samithi:  pick(rng, samithis),
			Cohort:   pick(rng, cohorts),
			Gender:   pick(rng, []string{"Male", "Female"}),
		}
		if rng.Intn(10) < 7 {
			e.Attendance = model.Attended
		}

		for _, meta := range events {
			if rng.Intn(10) < 6 {
				continue
			}
			e.RegisteredEvents = append(e.RegisteredEvents, meta.Name)
			scoreEvent(rng, e, meta)
		}
		fixtures.Registrations = append(fixtures.Registrations, e)
	}

	data, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("write fixtures: %w", err)
	}
	return nil
}

// scoreEvent fills a partial score map: some judges never scored, some
// criteria are missing, and some cells arrive as strings, matching what
// real documents look like.
func scoreEvent(rng *rand.Rand, e *model.Entrant, meta *model.EventMetadata) {
	if e.Score == nil {
		e.Score = make(map[string]map[string]map[string]any)
	}
	if e.Comment == nil {
		e.Comment = make(map[string]map[string]string)
	}
	byJudge := make(map[string]map[string]any)
	comments := make(map[string]string)
	for _, judgeID := range meta.JudgeIDs {
		if rng.Intn(10) < 2 {
			continue
		}
		cells := make(map[string]any)
		for _, c := range meta.Criteria {
			if rng.Intn(10) < 1 {
				continue
			}
			mark := float64(rng.Intn(int(c.MaxMarks)*2+1)) / 2
			if rng.Intn(4) == 0 {
				cells[c.Name] = fmt.Sprintf("%.1f", mark)
			} else {
				cells[c.Name] = mark
			}
		}
		byJudge[judgeID] = cells
		if rng.Intn(3) == 0 {
			comments[judgeID] = pick(rng, []string{"Good effort", "Needs practice", "Excellent"})
		}
	}
	e.Score[meta.Name] = byJudge
	e.Comment[meta.Name] = comments
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

func shortName(event string) string {
	out := make([]rune, 0, len(event))
	for _, r := range event {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			out = append(out, r|0x20)
		}
	}
	return string(out)
}
