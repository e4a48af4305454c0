// Package types contains the response shapes served by the admin API.
package types

import "github.com/talika/judgeboard/internal/domain/model"

// JudgeScores is one judge's column block for a leaderboard row.
type JudgeScores struct {
	Judge   string             `json:"judge"`
	Scores  map[string]float64 `json:"scores"`
	Total   float64            `json:"total"`
	Comment string             `json:"comment"`
}

// LeaderboardRow is one ranked line of an event leaderboard.
type LeaderboardRow struct {
	Rank       int            `json:"rank"`
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	District   string         `json:"district"`
	Samithi    string         `json:"samithi,omitempty"`
	Attendance string         `json:"attendance,omitempty"`
	Members    []model.Member `json:"members,omitempty"`
	Judges     []JudgeScores  `json:"judges"`
	Overall    float64        `json:"overallTotal"`
}

// LeaderboardView is the full JSON leaderboard for one event.
type LeaderboardView struct {
	Event      string            `json:"event"`
	Kind       model.EventKind   `json:"kind"`
	Criteria   []model.Criterion `json:"criteria"`
	JudgeNames []string          `json:"judgeNames"`
	MaxTotal   float64           `json:"maxTotal"`
	Rows       []LeaderboardRow  `json:"rows"`
}

// EventSummary is one event in the events listing, with the derived judge
// sign-in credentials alongside the metadata.
type EventSummary struct {
	Name        string            `json:"name"`
	Kind        model.EventKind   `json:"kind"`
	Criteria    []model.Criterion `json:"criteria"`
	MaxTotal    float64           `json:"maxTotal"`
	Cohorts     []string          `json:"cohorts,omitempty"`
	JudgeLogins []JudgeLogin      `json:"judgeLogins,omitempty"`
}

// JudgeLogin is a derived judge credential pair.
type JudgeLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EventsView is the events listing response.
type EventsView struct {
	Events  []EventSummary `json:"events"`
	Cohorts []string       `json:"cohorts,omitempty"`
}

// RegistrantFilter narrows the registrations listing. Zero values mean
// "no constraint"; Query matches name or id case-insensitively.
type RegistrantFilter struct {
	District        string
	Event           string
	Cohort          string
	TravelMode      string
	DropTravelMode  string
	Accommodation   string
	Accompanying    string
	Query           string
	NeedsPickup     *bool
	NeedsDrop       *bool
	NeedsFoodPacket *bool
}

// RegistrantsView is the registrations listing response.
type RegistrantsView struct {
	Registrants []*model.Entrant         `json:"registrants"`
	Facets      model.RegistrationFacets `json:"facets"`
	Total       int                      `json:"total"`
}

// Stats is the lightweight counters payload for the dashboard header.
type Stats struct {
	Registrants int `json:"registrants"`
	Events      int `json:"events"`
	Districts   int `json:"districts"`
	CheckedIn   int `json:"checkedIn"`
}

// CriteriaUpdate is the PUT body for replacing an event's criteria.
type CriteriaUpdate struct {
	Criteria []model.Criterion `json:"criteria" validate:"required,min=1,dive"`
}
