// Package charts computes JSON-serializable chart payloads for the
// dashboard's charting collaborator (a plotly.js front end). It never
// renders pixels; every builder is a pure derivation over the loaded table.
package charts

import (
	"fmt"
	"math"
	"sort"

	"claimscope/domain/dataset"
	"claimscope/domain/filter"
	"claimscope/domain/summary"
)

// GroupStat is one group's aggregate claim profile
type GroupStat struct {
	Group  string  `json:"group"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// BarPayload backs the grouped mean/median bar charts
type BarPayload struct {
	Title      string      `json:"title"`
	GroupLabel string      `json:"group_label"`
	Horizontal bool        `json:"horizontal"`
	Groups     []GroupStat `json:"groups"`
}

// PieSlice is one category's share of all records
type PieSlice struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// PiePayload backs the donut proportion charts
type PiePayload struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
}

// TreemapNode is one make/model leaf of the vehicle treemap
type TreemapNode struct {
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Fraction float64 `json:"fraction"`
}

// TreemapPayload backs the make/model distribution treemap
type TreemapPayload struct {
	Title string        `json:"title"`
	Nodes []TreemapNode `json:"nodes"`
}

// LinePoint is one x position of a trend line
type LinePoint struct {
	X      string  `json:"x"`
	Mean   float64 `json:"mean,omitempty"`
	Median float64 `json:"median"`
}

// LinePayload backs the median/mean trend lines
type LinePayload struct {
	Title  string      `json:"title"`
	XLabel string      `json:"x_label"`
	Points []LinePoint `json:"points"`
}

// ScatterPoint is one record of the claim-vs-age scatter
type ScatterPoint struct {
	Age   float64 `json:"age"`
	Claim float64 `json:"claim"`
	Group string  `json:"group,omitempty"`
}

// ScatterPayload backs the claim-value-vs-age scatter chart
type ScatterPayload struct {
	Title      string         `json:"title"`
	GroupLabel string         `json:"group_label,omitempty"`
	Points     []ScatterPoint `json:"points"`
}

// ComparisonBarPayload backs the grouped Selected/Excluded/All comparison of
// average and median claim values
type ComparisonBarPayload struct {
	Title      string    `json:"title"`
	Statistics []string  `json:"statistics"`
	Selected   []float64 `json:"selected"`
	Excluded   []float64 `json:"excluded"`
	All        []float64 `json:"all"`
}

const (
	targetField = "claim_amount"
	ageField    = "age"
)

// GroupStats aggregates the target claim column per distinct value of a
// categorical field, in first-observed order. Missing group values are
// skipped unless the field's missing-value policy includes them.
func GroupStats(t *dataset.Table, group string) []GroupStat {
	cats := t.Categorical(group)
	claims := t.Numeric(targetField)
	if cats == nil || claims == nil {
		return nil
	}
	field, _ := t.Field(group)

	byGroup := make(map[string][]float64)
	var order []string
	for i, g := range cats {
		if g == "" && !field.IncludeMissing {
			continue
		}
		if math.IsNaN(claims[i]) {
			continue
		}
		if _, seen := byGroup[g]; !seen {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], claims[i])
	}

	out := make([]GroupStat, 0, len(order))
	for _, g := range order {
		d := summary.Describe(byGroup[g])
		out = append(out, GroupStat{
			Group:  g,
			Mean:   round2(d.Mean),
			Median: round2(d.Median),
			Count:  int(d.Count),
		})
	}
	return out
}

// MeanMedianBar builds the standard grouped bar for one categorical field,
// ordered by ascending median claim
func MeanMedianBar(t *dataset.Table, group string) BarPayload {
	field, _ := t.Field(group)
	groups := GroupStats(t, group)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Median < groups[j].Median })
	return BarPayload{
		Title:      fmt.Sprintf("Mean and Median Claims by %s", field.Label),
		GroupLabel: field.Label,
		Groups:     groups,
	}
}

// HorizontalBar is the mean/median bar variant with inverted axes, used for
// long group lists such as auto make and model
func HorizontalBar(t *dataset.Table, group string) BarPayload {
	p := MeanMedianBar(t, group)
	p.Horizontal = true
	return p
}

// StateBar builds the state bar ordered by descending median claim. The
// miscellaneous "Other" bucket is excluded from the state comparisons.
func StateBar(t *dataset.Table) BarPayload {
	var groups []GroupStat
	for _, g := range GroupStats(t, "state") {
		if g.Group == "Other" {
			continue
		}
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Median > groups[j].Median })
	return BarPayload{
		Title:      "Mean and Median Claims by State Sorted by Median Claim",
		GroupLabel: "State",
		Groups:     groups,
	}
}

// Pie builds the donut proportion chart for one categorical field. Missing
// values never get a slice.
func Pie(t *dataset.Table, group string) PiePayload {
	field, _ := t.Field(group)
	cats := t.Categorical(group)

	counts := make(map[string]int)
	var order []string
	total := 0
	for _, g := range cats {
		if g == "" {
			continue
		}
		if counts[g] == 0 {
			order = append(order, g)
		}
		counts[g]++
		total++
	}

	payload := PiePayload{Title: fmt.Sprintf("Proportions Observed in the Data: %s", field.Label)}
	if total == 0 {
		return payload
	}
	for _, g := range order {
		payload.Slices = append(payload.Slices, PieSlice{
			Label:    g,
			Count:    counts[g],
			Fraction: round2(float64(counts[g]) / float64(total)),
		})
	}
	sort.SliceStable(payload.Slices, func(i, j int) bool { return payload.Slices[i].Count > payload.Slices[j].Count })
	return payload
}

// MakeModelTreemap builds the vehicle make/model record-share treemap
func MakeModelTreemap(t *dataset.Table) TreemapPayload {
	makes := t.Categorical("auto_make")
	models := t.Categorical("auto_model")

	type key struct{ mk, md string }
	counts := make(map[key]int)
	var order []key
	total := 0
	for i := range makes {
		if makes[i] == "" || models[i] == "" {
			continue
		}
		k := key{makes[i], models[i]}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
		total++
	}

	payload := TreemapPayload{Title: "Distribution of Makes and Models"}
	if total == 0 {
		return payload
	}
	for _, k := range order {
		payload.Nodes = append(payload.Nodes, TreemapNode{
			Make:     k.mk,
			Model:    k.md,
			Fraction: round2(float64(counts[k]) / float64(total)),
		})
	}
	return payload
}

// MedianClaimByAge builds the median-claim-per-year-of-age line, with
// medians rounded to the nearest hundred dollars
func MedianClaimByAge(t *dataset.Table) LinePayload {
	ages := t.Numeric(ageField)
	claims := t.Numeric(targetField)

	byAge := make(map[int][]float64)
	for i, a := range ages {
		if math.IsNaN(a) || math.IsNaN(claims[i]) {
			continue
		}
		byAge[int(a)] = append(byAge[int(a)], claims[i])
	}

	keys := make([]int, 0, len(byAge))
	for a := range byAge {
		keys = append(keys, a)
	}
	sort.Ints(keys)

	payload := LinePayload{Title: "Median Claim Value by Age", XLabel: "Age"}
	for _, a := range keys {
		d := summary.Describe(byAge[a])
		payload.Points = append(payload.Points, LinePoint{
			X:      fmt.Sprintf("%d", a),
			Median: round100(d.Median),
		})
	}
	return payload
}

// TrendByGroup builds the mean/median trend line across an ordered
// categorical field such as age_bracket or auto_year
func TrendByGroup(t *dataset.Table, group string) LinePayload {
	field, _ := t.Field(group)
	groups := GroupStats(t, group)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Group < groups[j].Group })

	payload := LinePayload{
		Title:  fmt.Sprintf("Trends in Claim Values Across %s", field.Label),
		XLabel: field.Label,
	}
	for _, g := range groups {
		payload.Points = append(payload.Points, LinePoint{
			X:      g.Group,
			Mean:   round100(g.Mean),
			Median: round100(g.Median),
		})
	}
	return payload
}

// AgeBracketBar builds the mean/median bar per age bracket, ordered from the
// oldest bracket down
func AgeBracketBar(t *dataset.Table) BarPayload {
	groups := GroupStats(t, "age_bracket")
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Group > groups[j].Group })
	for i := range groups {
		groups[i].Mean = round100(groups[i].Mean)
		groups[i].Median = round100(groups[i].Median)
	}
	return BarPayload{
		Title:      "Mean and Median Claims by Age Bracket",
		GroupLabel: "Age Group",
		Horizontal: true,
		Groups:     groups,
	}
}

// ClaimAgeScatter builds the claim-vs-age scatter, optionally restricted to
// a selection mask and colored by a categorical group. A nil mask plots the
// full dataset; an empty group name leaves the points ungrouped.
func ClaimAgeScatter(t *dataset.Table, mask filter.Mask, group string) ScatterPayload {
	ages := t.Numeric(ageField)
	claims := t.Numeric(targetField)

	var cats []string
	groupLabel := ""
	if group != "" {
		if field, ok := t.Field(group); ok && field.Kind == dataset.KindCategorical {
			cats = t.Categorical(group)
			groupLabel = field.Label
		}
	}

	payload := ScatterPayload{
		Title:      "Claim Value vs Age (Zoom to Inspect, Click Legend to Activate/Deactivate Groups)",
		GroupLabel: groupLabel,
	}
	for i := range claims {
		if mask != nil && !mask[i] {
			continue
		}
		if math.IsNaN(ages[i]) || math.IsNaN(claims[i]) {
			continue
		}
		p := ScatterPoint{Age: ages[i], Claim: claims[i]}
		if cats != nil {
			p.Group = cats[i]
		}
		payload.Points = append(payload.Points, p)
	}
	return payload
}

// ComparisonBar extracts the average and median rows of a comparison table
// into the grouped Selected/Excluded/All bar
func ComparisonBar(table summary.ComparisonTable) ComparisonBarPayload {
	payload := ComparisonBarPayload{
		Title:      "Comparison of Average and Median Claim Values",
		Statistics: []string{summary.StatAverage, summary.StatMedian},
	}
	for _, stat := range payload.Statistics {
		row, ok := table.Lookup(stat)
		if !ok {
			continue
		}
		payload.Selected = append(payload.Selected, row.Selected)
		payload.Excluded = append(payload.Excluded, row.Excluded)
		payload.All = append(payload.All, row.All)
	}
	return payload
}

// round2 rounds to cents, preserving NaN
func round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}

// round100 rounds to the nearest hundred, preserving NaN
func round100(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v/100) * 100
}
