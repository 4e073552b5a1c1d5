package evaluator

import "math"

// analyzePriority computes the percentage of cases per priority label and
// whether each falls within the rubric's [min, max] bound (§4.11, V6).
// Percentages are rounded to two decimal places; the caller's invariant
// (sum to 100 within rounding) holds because every case contributes to
// exactly one bucket.
func analyzePriority(cases []TestCase, rubric Rubric) PriorityAnalysis {
	counts := map[string]int{}
	for _, c := range cases {
		counts[c.Priority]++
	}

	total := len(cases)
	distribution := make(map[string]float64, len(counts))
	compliant := make(map[string]bool, len(counts))

	for label, count := range counts {
		pct := 0.0
		if total > 0 {
			pct = round2(float64(count) / float64(total) * 100)
		}
		distribution[label] = pct

		r, ok := rubric.PriorityRatios[label]
		compliant[label] = ok && float64(r.Min) <= pct && pct <= float64(r.Max)
	}

	return PriorityAnalysis{
		Distribution: distribution,
		Compliant:    compliant,
		Rule:         rubric.PriorityRatios,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
