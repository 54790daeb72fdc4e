package summary

import (
	"github.com/montanaflynn/stats"
)

// MinDistributionSample is the smallest selected subset for which
// distribution charts (histogram, box) are still drawn.
const MinDistributionSample = 10

// Variant labels for the conditionally trimmed distribution charts
const (
	LabelFull    = "Selected Data"
	LabelTrimmed = "Selected Data without Extreme Outliers"
)

// SmallSampleAdvisory is shown whenever the selection is small enough that
// results should be interpreted with caution.
const SmallSampleAdvisory = "This is a small subset of data, so use discretion when interpreting the results."

// ChartDecision tells the charting collaborator which subset to plot and
// under which label. When ShowDistribution is false only the comparison
// table and the grouped bar comparison remain meaningful.
type ChartDecision struct {
	ShowDistribution bool      `json:"show_distribution"`
	SmallSample      bool      `json:"small_sample"`
	Advisory         string    `json:"advisory,omitempty"`
	Label            string    `json:"label,omitempty"`
	Values           []float64 `json:"-"`
}

// SelectDistribution applies the outlier-aware policy to the selected
// subset's claim values:
//
//  1. Fewer than MinDistributionSample rows: advisory only, no
//     distribution charts.
//  2. Otherwise compare the upper tail (max - p90) against the upper body
//     (p90 - p75). A strictly longer tail selects the trimmed variant,
//     restricted to values below the 90th percentile; anything else plots
//     the full selection.
//
// The rule is a heuristic boundary check, not a statistical test. Quantiles
// follow the stats.Percentile convention documented on Describe.
func SelectDistribution(selected []float64) ChartDecision {
	clean := dropNaN(selected)
	n := len(clean)

	decision := ChartDecision{
		SmallSample: n <= MinDistributionSample,
	}
	if decision.SmallSample {
		decision.Advisory = SmallSampleAdvisory
	}
	if n < MinDistributionSample {
		return decision
	}

	max, errMax := stats.Max(clean)
	p90, err90 := stats.Percentile(clean, 90)
	p75, err75 := stats.Percentile(clean, 75)

	decision.ShowDistribution = true
	if errMax != nil || err90 != nil || err75 != nil {
		decision.Label = LabelFull
		decision.Values = clean
		return decision
	}

	if max-p90 > p90-p75 {
		trimmed := make([]float64, 0, n)
		for _, v := range clean {
			if v < p90 {
				trimmed = append(trimmed, v)
			}
		}
		decision.Label = LabelTrimmed
		decision.Values = trimmed
		return decision
	}

	decision.Label = LabelFull
	decision.Values = clean
	return decision
}
