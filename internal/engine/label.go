package engine

import "strings"

// LabelKind distinguishes real category values from the two reserved
// buckets. The reserved buckets exist as tagged values internally so a
// genuine category named "Outros" can never collide with the synthesized
// one; the legacy strings appear only at the serialization boundary.
type LabelKind int

const (
	LabelValue LabelKind = iota
	LabelNotInformed
	LabelOthers
)

// SelectionNotInformed is the sentinel the UI sends inside a
// multi-select to request blank-field rows.
const SelectionNotInformed = "__nao_informado__"

const (
	displayNotInformed = "Não informado"
	displayOthers      = "Outros"
)

// Label is a chart/aggregation bucket name.
type Label struct {
	Kind LabelKind
	Text string
}

// MakeLabel trims a raw field value into a Label; blank values and the
// legacy not-informed spellings become the not-informed bucket.
func MakeLabel(raw string) Label {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || IsNotInformed(trimmed) {
		return Label{Kind: LabelNotInformed}
	}
	return Label{Kind: LabelValue, Text: trimmed}
}

// OthersLabel is the synthesized catch-all bucket.
func OthersLabel() Label {
	return Label{Kind: LabelOthers}
}

// ParseSelection maps a multi-select entry coming from the UI into a
// Label, accepting the legacy sentinel spellings for not-informed.
func ParseSelection(s string) Label {
	folded := Fold(strings.TrimSpace(s))
	if folded == SelectionNotInformed || folded == "nao informado" {
		return Label{Kind: LabelNotInformed}
	}
	return MakeLabel(s)
}

// IsNotInformed reports whether a raw label text means the not-informed
// bucket, by sentinel or by case/accent-insensitive display name.
func IsNotInformed(text string) bool {
	folded := Fold(strings.TrimSpace(text))
	return folded == SelectionNotInformed || folded == "nao informado"
}

func (l Label) String() string {
	switch l.Kind {
	case LabelNotInformed:
		return displayNotInformed
	case LabelOthers:
		return displayOthers
	default:
		return l.Text
	}
}
