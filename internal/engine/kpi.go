package engine

import "math"

// KPI ratios. Each guards its denominator: an undefined ratio is nil
// (rendered as "–"), which is deliberately distinct from a legitimate
// zero result. NaN and Inf never escape.

// Percentage returns part/whole·100, nil when whole is not positive.
func Percentage(part, whole float64) *float64 {
	if whole <= 0 {
		return nil
	}
	return round3(part / whole * 100)
}

// CostPerUnit returns investment/units, nil when units is not positive.
func CostPerUnit(investment, units float64) *float64 {
	if units <= 0 {
		return nil
	}
	return round3(investment / units)
}

// MonthOverMonth returns the relative change between the last two
// values of a period series: (current-previous)/previous. With fewer
// than two periods, or a non-positive previous value, there is no
// defined delta and the result is nil — never 0.
func MonthOverMonth(series []float64) *float64 {
	if len(series) < 2 {
		return nil
	}
	previous := series[len(series)-2]
	current := series[len(series)-1]
	if previous <= 0 {
		return nil
	}
	return round3((current - previous) / previous)
}

// AveragePerCustomer returns totalMetric/customers. Unlike the ratios
// above, an empty customer base is "no data", not an undefined ratio,
// so the result is 0 rather than nil.
func AveragePerCustomer(totalMetric float64, customers int) float64 {
	if customers <= 0 {
		return 0
	}
	v := round3(totalMetric / float64(customers))
	return *v
}

func round3(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := math.Round(v*1000) / 1000
	return &r
}
