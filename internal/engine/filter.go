package engine

import (
	"strings"
	"time"
)

// Filter is the current selection state of one dashboard. Zero values
// mean "no restriction" everywhere: an empty multi-select passes all
// rows, an empty query passes all rows, absent dates disable the range.
type Filter struct {
	// Start and End bound Domain.DateField, inclusive, as YYYY-MM-DD.
	Start string
	End   string

	// Exact requires field == value.
	Exact map[string]string

	// Selected holds per-field multi-select values as sent by the UI;
	// SelectionNotInformed matches blank fields.
	Selected map[string][]string

	// Query is the free-text search across Domain.SearchFields.
	Query string
}

// Apply runs the filter chain over the rows: date range, exact matches,
// multi-select memberships, then free text. Predicates only ever
// discard, so adding one never grows the result.
func Apply(rows []Row, d Domain, f Filter) []Row {
	out := make([]Row, 0, len(rows))

	start, hasStart := ParseDate(f.Start)
	end, hasEnd := ParseDate(f.End)
	rangeActive := (f.Start != "" || f.End != "") && (hasStart || hasEnd)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, row := range rows {
		if rangeActive && !inRange(row[d.DateField], start, hasStart, end, hasEnd) {
			continue
		}
		if !matchesExact(row, f.Exact) {
			continue
		}
		if !matchesSelections(row, f.Selected) {
			continue
		}
		if query != "" && !matchesQuery(row, d.SearchFields, query) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// inRange checks the row date against [start, end] inclusive. Rows with
// unparseable dates are excluded while a range filter is active.
func inRange(value string, start time.Time, hasStart bool, end time.Time, hasEnd bool) bool {
	t, ok := ParseDate(value)
	if !ok {
		return false
	}
	day := t.Truncate(24 * time.Hour)
	if hasStart && day.Before(start) {
		return false
	}
	if hasEnd && day.After(end) {
		return false
	}
	return true
}

func matchesExact(row Row, exact map[string]string) bool {
	for field, want := range exact {
		if want == "" {
			continue
		}
		if strings.TrimSpace(row[field]) != want {
			return false
		}
	}
	return true
}

// matchesSelections applies every multi-select. An empty selection set
// is a pass-through; a row with a blank field matches only when the set
// contains the not-informed sentinel.
func matchesSelections(row Row, selected map[string][]string) bool {
	for field, values := range selected {
		if len(values) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[field])
		cellBlank := cell == "" || IsNotInformed(cell)
		matched := false
		for _, v := range values {
			label := ParseSelection(v)
			if label.Kind == LabelNotInformed {
				if cellBlank {
					matched = true
					break
				}
				continue
			}
			if cell == label.Text {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchesQuery(row Row, fields []string, query string) bool {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, row[field])
	}
	haystack := strings.ToLower(strings.Join(parts, " | "))
	return strings.Contains(haystack, query)
}
