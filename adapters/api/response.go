package api

import (
	"math"

	"claimscope/domain/charts"
	"claimscope/domain/summary"
	"claimscope/internal/analysis"
)

// rowDTO is a comparison table row with missing statistics encoded as JSON
// null. encoding/json rejects NaN, so every float crossing the API boundary
// goes through nullable.
type rowDTO struct {
	Statistic string   `json:"statistic"`
	Selected  *float64 `json:"selected"`
	Excluded  *float64 `json:"excluded"`
	All       *float64 `json:"all"`
}

type comparisonBarDTO struct {
	Title      string     `json:"title"`
	Statistics []string   `json:"statistics"`
	Selected   []*float64 `json:"selected"`
	Excluded   []*float64 `json:"excluded"`
	All        []*float64 `json:"all"`
}

// filterResponse is the JSON shape of one filter pass
type filterResponse struct {
	SelectedCount int                      `json:"selected_count"`
	ExcludedCount int                      `json:"excluded_count"`
	TotalCount    int                      `json:"total_count"`
	Table         []rowDTO                 `json:"table"`
	Decision      summary.ChartDecision    `json:"decision"`
	Histogram     *charts.HistogramPayload `json:"histogram,omitempty"`
	Box           *charts.BoxPayload       `json:"box,omitempty"`
	ComparisonBar comparisonBarDTO         `json:"comparison_bar"`
	Scatter       charts.ScatterPayload    `json:"scatter"`
}

func newFilterResponse(r analysis.Result) filterResponse {
	rows := make([]rowDTO, 0, len(r.Table.Rows))
	for _, row := range r.Table.Rows {
		rows = append(rows, rowDTO{
			Statistic: row.Statistic,
			Selected:  nullable(row.Selected),
			Excluded:  nullable(row.Excluded),
			All:       nullable(row.All),
		})
	}
	return filterResponse{
		SelectedCount: r.SelectedCount,
		ExcludedCount: r.ExcludedCount,
		TotalCount:    r.TotalCount,
		Table:         rows,
		Decision:      r.Decision,
		Histogram:     r.Histogram,
		Box:           r.Box,
		ComparisonBar: comparisonBarDTO{
			Title:      r.ComparisonBar.Title,
			Statistics: r.ComparisonBar.Statistics,
			Selected:   nullableSlice(r.ComparisonBar.Selected),
			Excluded:   nullableSlice(r.ComparisonBar.Excluded),
			All:        nullableSlice(r.ComparisonBar.All),
		},
		Scatter: r.Scatter,
	}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func nullableSlice(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = nullable(v)
	}
	return out
}
