package engine

import (
	"math"
	"sort"
)

// Bucket is one aggregation group.
type Bucket struct {
	Label Label
	Value float64
}

// CountBy groups rows by a field and counts them, descending by count
// with ties in first-seen order. The optional normalizer maps the raw
// cell into a Label; the default trims the value and sends blanks to
// the not-informed bucket.
func CountBy(rows []Row, field string, normalize func(string) Label) []Bucket {
	if normalize == nil {
		normalize = MakeLabel
	}
	counts := make(map[Label]float64)
	order := make([]Label, 0)
	for _, row := range rows {
		label := normalize(row[field])
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	return sortedBuckets(order, counts)
}

// SumBy groups rows by a field and sums a numeric field, descending by
// sum with ties in first-seen order.
func SumBy(rows []Row, field, valueField string) []Bucket {
	sums := make(map[Label]float64)
	order := make([]Label, 0)
	for _, row := range rows {
		label := MakeLabel(row[field])
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] += ParseDecimal(row[valueField])
	}
	return sortedBuckets(order, sums)
}

func sortedBuckets(order []Label, values map[Label]float64) []Bucket {
	buckets := make([]Bucket, 0, len(order))
	for _, label := range order {
		buckets = append(buckets, Bucket{Label: label, Value: values[label]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Value > buckets[j].Value
	})
	return buckets
}

// WeightedAverage computes Σ(metric·weight)/Σ(weight) over the rows.
// Rows with a non-positive weight or a non-finite metric are excluded
// from both sides, not counted as zero. Returns nil when no weight
// remains, so a division by zero can never surface.
func WeightedAverage(rows []Row, metricField, weightField string) *float64 {
	var sum, weightTotal float64
	for _, row := range rows {
		weight := ParseDecimal(row[weightField])
		if weight <= 0 {
			continue
		}
		metric := ParseDecimal(row[metricField])
		if math.IsNaN(metric) || math.IsInf(metric, 0) {
			continue
		}
		sum += metric * weight
		weightTotal += weight
	}
	if weightTotal == 0 {
		return nil
	}
	avg := sum / weightTotal
	return &avg
}
