// Package engine implements the shared tabular pipeline every dashboard
// runs over its webhook rows: alias-based field extraction, coercion,
// category bucketing, filtering, stable sorting, pagination, grouped
// aggregation with a Top-N+"Outros" reduction, and guarded KPI ratios.
//
// The engine is generic over a Domain configuration; the per-dashboard
// field tables live in internal/transformer.
package engine

// Kind selects the comparison and coercion semantics of a canonical field.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumber
)

// Row is one normalized record. Every canonical field of its domain is
// present, possibly as the empty string. Dates are stored in
// "2006-01-02 15:04:05" or "2006-01-02" form, numbers as plain decimals.
type Row map[string]string

// BucketFunc classifies a raw field value into a fixed label.
type BucketFunc func(string) string

// Domain configures the engine for one dashboard: which canonical fields
// exist, where to find them in the raw payload, and how to filter and
// sort them. Domains are data, not code; see transformer.Domains.
type Domain struct {
	Name string

	// Aliases maps each canonical field to the candidate payload keys,
	// in lookup order.
	Aliases map[string][]string

	// Kinds maps canonical fields to their comparison semantics.
	// Fields absent from the map are text.
	Kinds map[string]Kind

	// Buckets maps canonical fields to the classifier applied to the
	// extracted raw value during normalization.
	Buckets map[string]BucketFunc

	// DateField is the field the entry_start/entry_end range applies to.
	DateField string

	// SearchFields are concatenated for the free-text filter.
	SearchFields []string

	// MultiSelect names the fields that accept multi-select filters.
	MultiSelect []string

	DefaultSort SortState
}

// FieldKind returns the configured kind of a field, defaulting to text.
func (d Domain) FieldKind(field string) Kind {
	if k, ok := d.Kinds[field]; ok {
		return k
	}
	return KindText
}
