// Package analysis wires the filter pipeline together: one Engine holds the
// immutable dataset snapshot for the session, and every user interaction
// runs one synchronous pass of predicates, combined mask, comparison table,
// and chart decision. Nothing is cached between interactions.
package analysis

import (
	"context"
	"math"

	"claimscope/domain/charts"
	"claimscope/domain/dataset"
	"claimscope/domain/filter"
	"claimscope/domain/summary"
	"claimscope/internal"
)

const (
	targetField = "claim_amount"
	ageField    = "age"
)

// Engine is the session-scoped analysis context. The table is loaded once
// and read-only thereafter; Apply derives everything else per call.
type Engine struct {
	table *dataset.Table
	log   *internal.Logger
}

// NewEngine creates an engine over a loaded dataset snapshot
func NewEngine(table *dataset.Table) *Engine {
	return &Engine{
		table: table,
		log:   internal.DefaultLogger,
	}
}

// Table exposes the underlying snapshot
func (e *Engine) Table() *dataset.Table {
	return e.table
}

// FieldFilter describes one filter control: the field and its offered
// choices. The "none" sentinel (empty string) is always the implicit first
// choice and the default.
type FieldFilter struct {
	Field   dataset.Field `json:"field"`
	Choices []string      `json:"choices"`
}

// Filters returns the categorical filter controls in schema order
func (e *Engine) Filters() []FieldFilter {
	var out []FieldFilter
	for _, f := range e.table.Fields() {
		if !f.Filterable || f.Kind != dataset.KindCategorical {
			continue
		}
		choices := e.table.Distinct(f.Name)
		if f.Name == "auto_year" {
			choices = e.table.DistinctSorted(f.Name, true)
		}
		out = append(out, FieldFilter{Field: f, Choices: choices})
	}
	return out
}

// AgeBounds returns the observed age range for the slider control
func (e *Engine) AgeBounds() (min, max float64) {
	return e.table.NumericBounds(ageField)
}

// Request is one interaction's filter state: an age interval plus one chosen
// value per categorical field. An absent or empty category means "none".
type Request struct {
	AgeMin       float64           `json:"age_min"`
	AgeMax       float64           `json:"age_max"`
	Categories   map[string]string `json:"categories"`
	ScatterGroup string            `json:"scatter_group,omitempty"`
}

// DefaultRequest selects everything: the full age range and "none" for
// every categorical field
func (e *Engine) DefaultRequest() Request {
	min, max := e.AgeBounds()
	return Request{AgeMin: min, AgeMax: max, Categories: map[string]string{}}
}

// Result is the complete output of one recompute pass
type Result struct {
	SelectedCount int                         `json:"selected_count"`
	ExcludedCount int                         `json:"excluded_count"`
	TotalCount    int                         `json:"total_count"`
	Table         summary.ComparisonTable     `json:"table"`
	Decision      summary.ChartDecision       `json:"decision"`
	Histogram     *charts.HistogramPayload    `json:"histogram,omitempty"`
	Box           *charts.BoxPayload          `json:"box,omitempty"`
	ComparisonBar charts.ComparisonBarPayload `json:"comparison_bar"`
	Scatter       charts.ScatterPayload       `json:"scatter"`

	Mask filter.Mask `json:"-"`
}

// Apply runs one full recompute pass: rebuild predicates, combine, summarize,
// select the chart variant, and derive the filter-driven chart payloads.
func (e *Engine) Apply(req Request) Result {
	mask := e.buildMask(req)

	claims := e.table.Numeric(targetField)
	selected := mask.Values(claims)
	excluded := mask.Complement().Values(claims)

	table := summary.Compare(selected, excluded, claims)
	decision := summary.SelectDistribution(selected)

	result := Result{
		SelectedCount: mask.Count(),
		ExcludedCount: len(mask) - mask.Count(),
		TotalCount:    e.table.Rows(),
		Table:         table,
		Decision:      decision,
		ComparisonBar: charts.ComparisonBar(table),
		Scatter:       charts.ClaimAgeScatter(e.table, mask, req.ScatterGroup),
		Mask:          mask,
	}
	if decision.ShowDistribution {
		hist := charts.FilteredClaimsHistogram(decision.Values, decision.Label)
		box := charts.FilteredClaimsBox(decision.Values, decision.Label)
		result.Histogram = &hist
		result.Box = &box
	}

	e.log.Debug("[Engine] filter pass: %d selected, %d excluded, distribution=%v",
		result.SelectedCount, result.ExcludedCount, decision.ShowDistribution)
	return result
}

// buildMask rebuilds every field's predicate and conjunction-reduces them
func (e *Engine) buildMask(req Request) filter.Mask {
	preds := make([]filter.Predicate, 0, len(e.table.Fields()))

	lo, hi := req.AgeMin, req.AgeMax
	obsMin, obsMax := e.AgeBounds()
	if math.IsNaN(lo) {
		lo = obsMin
	}
	if math.IsNaN(hi) {
		hi = obsMax
	}
	preds = append(preds, filter.NumericRange(e.table, ageField, lo, hi))

	for _, ff := range e.Filters() {
		choice := req.Categories[ff.Field.Name]
		preds = append(preds, filter.CategoryEquals(e.table, ff.Field.Name, choice))
	}
	return filter.Combine(e.table.Rows(), preds...)
}

// Bundle computes the static dashboard chart payloads for the snapshot
func (e *Engine) Bundle(ctx context.Context) (*charts.Bundle, error) {
	return charts.BuildBundle(ctx, e.table)
}
