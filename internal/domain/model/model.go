// Package model contains domain models passed between layers.
package model

// EventKind distinguishes individual competitions from district-team ones.
type EventKind string

const (
	KindIndividual EventKind = "Individual"
	KindGroup      EventKind = "Group"
)

// Attended is the raw attendance status recorded at check-in. Anything else
// renders as "Yet to Check In" downstream.
const Attended = "Attended"

// UnknownDistrict is the literal used for missing or empty district values.
// Grouping, ranking and every export must agree on this string.
const UnknownDistrict = "Unknown"

// Entrant is a registered participant, or a per-district group synthesized
// from participants for group-kind events.
type Entrant struct {
	ID          string `json:"studentId"`
	FullName    string `json:"studentFullName"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	District    string `json:"district"`
	Samithi     string `json:"samithiName,omitempty"`
	Cohort      string `json:"studentGroup,omitempty"`
	Attendance  string `json:"attendance,omitempty"`

	RegisteredEvents []string `json:"registeredEvents,omitempty"`

	// Logistics fields from the registration form. Display/filter only.
	ModeOfTravel        string `json:"modeOfTravel,omitempty"`
	ModeOfTravelForDrop string `json:"modeOfTravelForDrop,omitempty"`
	NeedsPickup         bool   `json:"needsPickup,omitempty"`
	NeedsDrop           bool   `json:"needsDrop,omitempty"`
	NeedsAccommodation  string `json:"needsAccommodation,omitempty"`
	NeedsFoodPacket     bool   `json:"needsReturnFoodPacket,omitempty"`
	HasAccompanying     string `json:"hasAccompanyingAdults,omitempty"`

	// Score holds raw marks keyed event -> judge id -> criterion. Cells are
	// untyped because upstream documents store them as numbers or numeric
	// strings; tally coerces them. Sparse until normalized.
	Score map[string]map[string]map[string]any `json:"score,omitempty"`

	// Comment holds per-judge free text keyed event -> judge id.
	Comment map[string]map[string]string `json:"comment,omitempty"`

	// Substitute holds per-event certificate overrides for swapped students.
	Substitute map[string]*Substitute `json:"substitute,omitempty"`

	// Members is populated only on group entrants.
	Members []Member `json:"members,omitempty"`

	// JudgeTotals and Overall are always recomputed from Score; values
	// present on raw records are never trusted.
	JudgeTotals map[string]float64 `json:"judgeWiseTotal,omitempty"`
	Overall     float64            `json:"overallTotal"`
}

// DistrictKey returns the grouping key for this entrant.
func (e *Entrant) DistrictKey() string {
	if e.District == "" {
		return UnknownDistrict
	}
	return e.District
}

// SubstituteFor returns the certificate override for an event, or nil.
func (e *Entrant) SubstituteFor(event string) *Substitute {
	if e.Substitute == nil {
		return nil
	}
	return e.Substitute[event]
}

// Member is the per-participant view carried by a group entrant.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	District   string `json:"district"`
	Attendance string `json:"attendance"`

	// Source points back at the registration record the member was built
	// from. Export needs the full scalar field set; API payloads do not.
	Source *Entrant `json:"-"`
}

// Substitute carries replacement certificate details for one event.
type Substitute struct {
	Name        string `json:"newStudentName"`
	Gender      string `json:"newStudentGender,omitempty"`
	DateOfBirth string `json:"newStudentDOB,omitempty"`
	Cohort      string `json:"newStudentGroup,omitempty"`
}

// Criterion is one scoring dimension with its maximum mark.
type Criterion struct {
	Name     string  `json:"name" validate:"required"`
	MaxMarks float64 `json:"maxMarks" validate:"gt=0"`
}

// EventMetadata describes one event's judging setup. Criteria keeps
// insertion order because column layout depends on it; JudgeIDs is the
// canonical per-judge order everywhere and must never be re-sorted.
type EventMetadata struct {
	Name        string      `json:"name"`
	Kind        EventKind   `json:"kind"`
	Criteria    []Criterion `json:"evalCriteria"`
	JudgeIDs    []string    `json:"judgeIdList"`
	JudgeEmails []string    `json:"judgeEmailList,omitempty"`
	Cohorts     []string    `json:"group,omitempty"`
}

// CriteriaNames returns criterion names in insertion order.
func (m *EventMetadata) CriteriaNames() []string {
	names := make([]string, len(m.Criteria))
	for i, c := range m.Criteria {
		names[i] = c.Name
	}
	return names
}

// MaxTotal returns the sum of maximum marks across criteria.
func (m *EventMetadata) MaxTotal() float64 {
	var total float64
	for _, c := range m.Criteria {
		total += c.MaxMarks
	}
	return total
}

// JudgeOrderEntry maps a judge display name to a 1-based seat order.
type JudgeOrderEntry struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// JudgeOrderMapping is the external ordering document for one event. It is
// aligned to JudgeIDs positionally by ascending Order, not by identifier.
type JudgeOrderMapping struct {
	Entries            []JudgeOrderEntry `json:"judgeOrder"`
	ExpectedJudgeCount int               `json:"expectedJudgeCount"`
}

// Session identifies the authenticated operator for one request. It is
// passed explicitly; there is no process-wide session state.
type Session struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RoleAdmin is the only role the admin API accepts.
const RoleAdmin = "admin"

// RegistrationFacets lists the distinct filterable values across all
// registrations, in first-seen order.
type RegistrationFacets struct {
	Districts       []string `json:"districts"`
	Events          []string `json:"events"`
	Cohorts         []string `json:"cohorts"`
	TravelModes     []string `json:"travelModes"`
	DropTravelModes []string `json:"dropTravelModes"`
}
