package engine

import (
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseDate parses the date formats the webhooks are known to emit.
// DD/MM/YYYY is the Brazilian form, never MM/DD.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKey normalizes a parseable date to YYYY-MM-DD; unparseable input
// yields the empty string.
func DateKey(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// MonthKey normalizes a parseable date to YYYY-MM for period grouping.
func MonthKey(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}

// ParseDecimal parses currency/quantity strings with either "." or ","
// as the decimal separator, picking whichever appears last in a mixed
// string ("1.234,56" and "1,234.56" both mean 1234.56). Unparseable or
// empty input coerces to 0 so NaN never reaches aggregation.
func ParseDecimal(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return 0
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')
	switch {
	case lastComma > lastDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		idx := strings.LastIndexByte(cleaned, ',')
		cleaned = strings.ReplaceAll(cleaned[:idx], ",", "") + "." + cleaned[idx+1:]
	case lastDot > lastComma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		idx := strings.LastIndexByte(cleaned, '.')
		cleaned = strings.ReplaceAll(cleaned[:idx], ".", "") + cleaned[idx:]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// FormatDecimal renders a coerced number back into canonical row form.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
