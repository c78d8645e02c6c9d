package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the current table ordering.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// NextSort implements the header-click rules: clicking the current key
// flips the direction, clicking a new key resets to the domain default
// direction.
func NextSort(current SortState, key string, d Domain) SortState {
	if current.Key == key {
		if current.Direction == Asc {
			return SortState{Key: key, Direction: Desc}
		}
		return SortState{Key: key, Direction: Asc}
	}
	direction := d.DefaultSort.Direction
	if direction == "" {
		direction = Desc
	}
	return SortState{Key: key, Direction: direction}
}

// Sort returns a stably sorted copy of rows by the state's key, using
// the field kind's comparator: dates by parsed timestamp (unparseable
// as epoch 0), numbers numerically (missing as 0), text with Brazilian
// Portuguese collation, case-insensitively.
func Sort(rows []Row, d Domain, state SortState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if state.Key == "" {
		return out
	}

	desc := state.Direction != Asc
	kind := d.FieldKind(state.Key)

	var col *collate.Collator
	if kind == KindText {
		col = collate.New(language.BrazilianPortuguese, collate.Loose)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compareField(out[i][state.Key], out[j][state.Key], kind, col)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareField(a, b string, kind Kind, col *collate.Collator) int {
	switch kind {
	case KindDate:
		av, bv := dateEpoch(a), dateEpoch(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case KindNumber:
		av, bv := ParseDecimal(a), ParseDecimal(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	default:
		return col.CompareString(a, b)
	}
}

func dateEpoch(s string) int64 {
	t, ok := ParseDate(s)
	if !ok {
		return 0
	}
	return t.Unix()
}
