// Package export builds the fixed-schema CSV artifacts: per-event
// leaderboards, top-5 certificate sheets and the cross-event final results.
//
// Every artifact is comma-delimited text with a UTF-8 byte-order-mark
// prefix and CRLF line terminators, fields escaped RFC-4180 style. The
// byte stream is a compatibility contract with the certificate tooling, so
// the cells are escaped by hand instead of csv.Writer (which always
// terminates the final record and quotes on its own triggers).
package export

import (
	"strconv"
	"strings"

	"github.com/talika/judgeboard/internal/domain/model"
)

// Artifact is a ready-to-deliver export file.
type Artifact struct {
	Filename string
	MIME     string
	Data     []byte
}

// MIMECSV is the content type for every artifact this package produces.
const MIMECSV = "text/csv;charset=utf-8"

// utf8BOM prefixes every artifact so spreadsheet tools pick up UTF-8.
const utf8BOM = "\uFEFF"

// Escape quotes a field when it contains a comma, quote or newline,
// doubling interior quotes. Other values pass through untouched.
func Escape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// document renders rows into the final artifact byte stream. There is no
// trailing line terminator after the last row.
func document(rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\r\n")
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(field))
		}
	}
	return []byte(b.String())
}

// collapseSpace squeezes runs of whitespace (including newlines) to single
// spaces and trims the ends. Used on judge comments before export.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatTotal renders a numeric total with exactly two decimal places.
func formatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// cellString renders a raw (normalized) score cell the way it was stored:
// numeric strings stay as written, numbers print without padding.
func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return "0"
	}
}

// attendanceLabel maps the raw check-in status to its display form.
func attendanceLabel(raw string) string {
	if raw == model.Attended {
		return "Present"
	}
	return "Yet to Check In"
}

// orDash substitutes "-" for empty identity fields.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
