package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Extract returns the value of the first candidate key present and
// non-nil in the record, stringified. A nil record or a miss on every
// key yields the empty string; extraction never fails.
//
// Webhook payloads rename fields between versions (a seller may arrive
// as VENDEDOR, Vendedor, seller or vendedor), so every canonical field
// carries an ordered alias list.
func Extract(record map[string]any, candidateKeys []string) string {
	if record == nil {
		return ""
	}
	for _, key := range candidateKeys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		return stringify(value)
	}
	return ""
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
