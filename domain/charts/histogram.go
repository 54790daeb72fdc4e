package charts

import (
	"fmt"
	"math"
	"sort"

	"claimscope/domain/dataset"
	"claimscope/domain/summary"
)

// HistogramBin is one equal-width bin of a histogram
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// HistogramPayload backs the claim-count histograms
type HistogramPayload struct {
	Title  string         `json:"title"`
	XLabel string         `json:"x_label"`
	Bins   []HistogramBin `json:"bins"`
}

// BoxPayload is the five-number summary backing a box chart
type BoxPayload struct {
	Title  string  `json:"title"`
	Group  string  `json:"group,omitempty"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// DefaultClaimBins is the bin count of the filtered-claims histogram
const DefaultClaimBins = 20

// Histogram buckets values into nbins equal-width bins. NaN entries are
// dropped; a constant column collapses into a single bin.
func Histogram(values []float64, nbins int, title string) HistogramPayload {
	payload := HistogramPayload{Title: title, XLabel: "Claim Value USD"}

	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 || nbins <= 0 {
		return payload
	}

	min, max := clean[0], clean[0]
	for _, v := range clean {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		payload.Bins = []HistogramBin{{From: min, To: max, Count: len(clean)}}
		return payload
	}

	width := (max - min) / float64(nbins)
	counts := make([]int, nbins)
	for _, v := range clean {
		idx := int((v - min) / width)
		if idx >= nbins { // max lands in the last bin
			idx = nbins - 1
		}
		counts[idx]++
	}
	for i, c := range counts {
		payload.Bins = append(payload.Bins, HistogramBin{
			From:  min + float64(i)*width,
			To:    min + float64(i+1)*width,
			Count: c,
		})
	}
	return payload
}

// FilteredClaimsHistogram builds the histogram for the conditionally trimmed
// filtered subset, titled with the variant label
func FilteredClaimsHistogram(values []float64, condition string) HistogramPayload {
	return Histogram(values, DefaultClaimBins, fmt.Sprintf("Number of Claims by Value - %s", condition))
}

// AgeHistogram buckets claims per year of age
func AgeHistogram(t *dataset.Table) HistogramPayload {
	payload := HistogramPayload{Title: "Number of Claims by Age", XLabel: "Age"}

	counts := make(map[int]int)
	for _, a := range t.Numeric(ageField) {
		if math.IsNaN(a) {
			continue
		}
		counts[int(a)]++
	}
	ages := make([]int, 0, len(counts))
	for a := range counts {
		ages = append(ages, a)
	}
	sort.Ints(ages)
	for _, a := range ages {
		payload.Bins = append(payload.Bins, HistogramBin{
			From:  float64(a),
			To:    float64(a + 1),
			Count: counts[a],
		})
	}
	return payload
}

// Box builds the five-number summary for one set of values
func Box(values []float64, title string) BoxPayload {
	d := summary.Describe(values)
	return BoxPayload{
		Title:  title,
		Min:    round2(d.Min),
		P25:    round2(d.P25),
		Median: round2(d.Median),
		P75:    round2(d.P75),
		Max:    round2(d.Max),
		Count:  int(d.Count),
	}
}

// FilteredClaimsBox builds the box chart for the conditionally trimmed
// filtered subset
func FilteredClaimsBox(values []float64, condition string) BoxPayload {
	return Box(values, fmt.Sprintf("Boxplot of Claim Distribution for %s", condition))
}

// StateBoxes builds one box per state, ordered by descending median claim.
// As with the state bar, the miscellaneous "Other" bucket is excluded.
func StateBoxes(t *dataset.Table) []BoxPayload {
	cats := t.Categorical("state")
	claims := t.Numeric(targetField)

	byState := make(map[string][]float64)
	for i, s := range cats {
		if s == "" || s == "Other" || math.IsNaN(claims[i]) {
			continue
		}
		byState[s] = append(byState[s], claims[i])
	}

	boxes := make([]BoxPayload, 0, len(byState))
	for s, vals := range byState {
		b := Box(vals, "Distribution of Car Accident Claims in Different States")
		b.Group = s
		boxes = append(boxes, b)
	}
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Median > boxes[j].Median })
	return boxes
}
