package export

import (
	"sort"
	"strconv"

	"github.com/talika/judgeboard/internal/domain/model"
)

// certTopN is how many ranked entrants the certificate sheet covers.
const certTopN = 5

// Certificate column priority. Remaining fields follow alphabetically.
var (
	certPriorityIndividual = []string{
		"eventName", "Rank", "studentFullName", "studentId",
		"district", "samithiName", "OverallTotal", "studentGroup",
	}
	certPriorityGroup = []string{
		"eventName", "Rank", "studentFullName", "studentId",
		"district", "studentGroup", "OverallTotal",
	}
)

// certField is a scalar (or string-slice) cell in a certificate row.
// Nested structures never make it into the column set.
type certField any

// Certificate builds the top-5 certificate sheet from an already-ranked
// list. Group events flatten each group's members into one row per member,
// tagged with the group's rank and district. Returns ok=false when there is
// nothing to export.
func Certificate(event string, kind model.EventKind, ranked []*model.Entrant) (Artifact, bool) {
	top := ranked
	if len(top) > certTopN {
		top = top[:certTopN]
	}

	var flat []map[string]certField
	priority := certPriorityIndividual
	if kind == model.KindGroup {
		priority = certPriorityGroup
		for i, group := range top {
			for _, m := range group.Members {
				flat = append(flat, groupMemberRow(event, i+1, group, m))
			}
		}
	} else {
		for i, e := range top {
			flat = append(flat, individualRow(event, i+1, e))
		}
	}

	if len(flat) == 0 {
		return Artifact{}, false
	}

	headers := certHeaders(flat, priority)

	headerRow := make([]string, len(headers))
	for i, h := range headers {
		headerRow[i] = Escape(h)
	}
	rows := make([][]string, 0, len(flat)+1)
	rows = append(rows, headerRow)
	for _, fields := range flat {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = certCell(fields[h])
		}
		rows = append(rows, row)
	}

	return Artifact{
		Filename: event + "_top5_cert_export.csv",
		MIME:     MIMECSV,
		Data:     documentPreEscaped(rows),
	}, true
}

// individualRow builds the certificate fields for one ranked participant,
// substituting certificate-relevant registration fields from the per-event
// override record when one exists.
func individualRow(event string, rank int, e *model.Entrant) map[string]certField {
	fields := scalarFields(e)
	fields["eventName"] = event
	fields["Rank"] = rank
	if sub := e.SubstituteFor(event); sub != nil {
		fields["studentFullName"] = sub.Name
		fields["gender"] = sub.Gender
		fields["dateOfBirth"] = sub.DateOfBirth
		fields["studentGroup"] = sub.Cohort
	}
	fields["OverallTotal"] = formatTotal(e.Overall)
	return fields
}

// groupMemberRow builds one flattened row for a group member, carrying the
// member's own registration fields with the group's rank, district and
// total layered on top.
func groupMemberRow(event string, rank int, group *model.Entrant, m model.Member) map[string]certField {
	fields := map[string]certField{}
	if m.Source != nil {
		fields = scalarFields(m.Source)
	}
	fields["eventName"] = event
	fields["Rank"] = rank
	fields["studentFullName"] = m.Name
	fields["studentId"] = m.ID
	fields["district"] = group.DistrictKey()
	fields["ATTENDEE_STATUS"] = m.Attendance
	fields["OverallTotal"] = formatTotal(group.Overall)
	return fields
}

// scalarFields extracts the exportable registration fields of an entrant.
// Score, comment, substitute and total maps stay out of the column set.
func scalarFields(e *model.Entrant) map[string]certField {
	fields := map[string]certField{
		"studentId":             e.ID,
		"needsPickup":           e.NeedsPickup,
		"needsDrop":             e.NeedsDrop,
		"needsReturnFoodPacket": e.NeedsFoodPacket,
	}
	putNonEmpty := func(key, val string) {
		if val != "" {
			fields[key] = val
		}
	}
	putNonEmpty("studentFullName", e.FullName)
	putNonEmpty("gender", e.Gender)
	putNonEmpty("dateOfBirth", e.DateOfBirth)
	putNonEmpty("district", e.District)
	putNonEmpty("samithiName", e.Samithi)
	putNonEmpty("studentGroup", e.Cohort)
	putNonEmpty("ATTENDEE_STATUS", e.Attendance)
	putNonEmpty("modeOfTravel", e.ModeOfTravel)
	putNonEmpty("modeOfTravelForDrop", e.ModeOfTravelForDrop)
	putNonEmpty("needsAccommodation", e.NeedsAccommodation)
	putNonEmpty("hasAccompanyingAdults", e.HasAccompanying)
	if len(e.RegisteredEvents) > 0 {
		fields["registeredEvents"] = e.RegisteredEvents
	}
	return fields
}

// certHeaders computes the union of row keys, alphabetical, then pulls the
// prioritized columns to the front.
func certHeaders(rows []map[string]certField, priority []string) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}
	all := make([]string, 0, len(seen))
	for key := range seen {
		all = append(all, key)
	}
	sort.Strings(all)

	inPriority := map[string]bool{}
	headers := make([]string, 0, len(all))
	for _, key := range priority {
		if seen[key] {
			headers = append(headers, key)
			inPriority[key] = true
		}
	}
	for _, key := range all {
		if !inPriority[key] {
			headers = append(headers, key)
		}
	}
	return headers
}

// certCell renders a certificate field. Slices are always wrapped in
// quotes with "; " separators; everything else goes through the usual
// escaping.
func certCell(v certField) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []string:
		joined := ""
		for i, s := range t {
			if i > 0 {
				joined += "; "
			}
			joined += s
		}
		return `"` + joined + `"`
	case bool:
		return strconv.FormatBool(t)
	case int:
		return Escape(strconv.Itoa(t))
	case string:
		return Escape(t)
	default:
		return ""
	}
}

// documentPreEscaped joins rows whose cells are already escaped. The
// certificate path escapes per-cell because slice fields carry their own
// quoting rule.
func documentPreEscaped(rows [][]string) []byte {
	out := make([]byte, 0, 256)
	out = append(out, utf8BOM...)
	for i, row := range rows {
		if i > 0 {
			out = append(out, '\r', '\n')
		}
		for j, field := range row {
			if j > 0 {
				out = append(out, ',')
			}
			out = append(out, field...)
		}
	}
	return out
}
