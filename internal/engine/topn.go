package engine

// Distribution is a chart-ready label/value pair list.
type Distribution struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// TopNWithOthers reduces a descending bucket list to at most topN
// labels plus a synthesized "Outros" bucket holding everything below
// the cut. A bucket makes the cut while capacity remains and its share
// of the total is at least minSharePct (a percentage). The not-informed
// bucket is exempt from both rules: whenever it carries value it stays
// visible, never folded into "Outros". Zero-value buckets are dropped
// entirely; a zero total yields an empty distribution. Ties keep input
// order.
func TopNWithOthers(buckets []Bucket, topN int, minSharePct float64) Distribution {
	var total float64
	for _, b := range buckets {
		total += b.Value
	}
	if total <= 0 {
		return Distribution{Labels: []string{}, Values: []float64{}}
	}

	dist := Distribution{Labels: []string{}, Values: []float64{}}
	included := 0
	var others float64

	for _, b := range buckets {
		if b.Value <= 0 {
			continue
		}
		share := b.Value / total * 100
		switch {
		case b.Label.Kind == LabelNotInformed:
			dist.Labels = append(dist.Labels, b.Label.String())
			dist.Values = append(dist.Values, b.Value)
			included++
		case included < topN && share >= minSharePct:
			dist.Labels = append(dist.Labels, b.Label.String())
			dist.Values = append(dist.Values, b.Value)
			included++
		default:
			others += b.Value
		}
	}

	if others > 0 {
		dist.Labels = append(dist.Labels, OthersLabel().String())
		dist.Values = append(dist.Values, others)
	}
	return dist
}
