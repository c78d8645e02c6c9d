// Package transformer turns raw webhook payloads into canonical engine
// rows. Normalization is total: a malformed record still becomes a row
// with sentinel fields, so aggregate counts always match payload row
// counts and one bad record never fails a batch.
package transformer

import (
	"fmt"

	"painel-etl/internal/engine"
)

// envelope keys tried, in order, when a payload arrives object-wrapped
// instead of as a bare array.
var envelopeKeys = []string{"data", "items", "result", "rows", "res"}

type Transformer struct{}

func New() *Transformer {
	return &Transformer{}
}

// NormalizeAll unwraps a decoded payload and normalizes every record.
// The second result counts fallback rows: records where every field
// extraction missed and only sentinel values remain.
func (t *Transformer) NormalizeAll(d engine.Domain, payload any) ([]engine.Row, int) {
	records := UnwrapRecords(payload)
	rows := make([]engine.Row, 0, len(records))
	fallbacks := 0
	for _, record := range records {
		row, hit := t.Normalize(d, record)
		if !hit {
			fallbacks++
		}
		rows = append(rows, row)
	}
	return rows, fallbacks
}

// Normalize maps one raw record into a canonical row. Every canonical
// field of the domain ends up present; the boolean reports whether any
// extraction hit at all.
func (t *Transformer) Normalize(d engine.Domain, record map[string]any) (engine.Row, bool) {
	row := make(engine.Row, len(d.Aliases))
	hit := false

	for field, aliases := range d.Aliases {
		raw := engine.Extract(record, aliases)
		if raw != "" {
			hit = true
		}

		if bucket, ok := d.Buckets[field]; ok {
			row[field] = bucket(raw)
			continue
		}

		switch d.FieldKind(field) {
		case engine.KindDate:
			if parsed, ok := engine.ParseDate(raw); ok {
				row[field] = parsed.Format("2006-01-02 15:04:05")
			} else {
				row[field] = ""
			}
		case engine.KindNumber:
			row[field] = engine.FormatDecimal(engine.ParseDecimal(raw))
		default:
			row[field] = raw
		}
	}
	return row, hit
}

// UnwrapRecords tolerates the response shapes the webhooks are known to
// produce: a bare array of records, an array wrapped in an array, an
// object carrying the array under a well-known key, or an object whose
// own values are themselves record objects.
func UnwrapRecords(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return recordsFromSlice(v)
	case map[string]any:
		for _, key := range envelopeKeys {
			if inner, ok := v[key]; ok {
				if records := UnwrapRecords(inner); len(records) > 0 {
					return records
				}
			}
		}
		// Object of row objects (keyed by id or position).
		records := make([]map[string]any, 0, len(v))
		for _, value := range v {
			if record, ok := value.(map[string]any); ok {
				records = append(records, record)
			}
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

func recordsFromSlice(items []any) []map[string]any {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch inner := item.(type) {
		case map[string]any:
			records = append(records, inner)
		case []any:
			// Array wrapped in array: [ [ {...} ] ].
			records = append(records, recordsFromSlice(inner)...)
		}
	}
	return records
}

// DomainFor resolves a dashboard name, mirroring gin's path params.
func DomainFor(name string) (engine.Domain, error) {
	d, ok := Domains[name]
	if !ok {
		return engine.Domain{}, fmt.Errorf("unknown dashboard: %s", name)
	}
	return d, nil
}
