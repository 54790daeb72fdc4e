package analysis

import (
	"context"
	"math"
	"testing"

	"claimscope/domain/dataset"
	"claimscope/domain/summary"
)

// engineTable builds a 40-row synthetic claims table: two states, two
// genders, ages cycling 20..59, claims rising with row index and one extreme
// outlier at the end.
func engineTable(t *testing.T) *dataset.Table {
	t.Helper()

	const n = 40
	claims := make([]float64, n)
	ages := make([]float64, n)
	states := make([]string, n)
	genders := make([]string, n)
	for i := 0; i < n; i++ {
		claims[i] = float64(1000 + i*500)
		ages[i] = float64(20 + i%40)
		if i%2 == 0 {
			states[i] = "NY"
		} else {
			states[i] = "OH"
		}
		if i%4 < 2 {
			genders[i] = "Male"
		} else {
			genders[i] = "Female"
		}
	}
	claims[n-1] = 500000 // heavy upper tail

	fields := []dataset.Field{
		{Name: "claim_amount", Label: "Claim Amount", Kind: dataset.KindNumeric},
		{Name: "age", Label: "Age", Kind: dataset.KindNumeric, Filterable: true},
		{Name: "state", Label: "State", Kind: dataset.KindCategorical, Filterable: true},
		{Name: "gender", Label: "Gender", Kind: dataset.KindCategorical, Filterable: true},
	}
	cols := map[string]dataset.Column{
		"claim_amount": {Kind: dataset.KindNumeric, Nums: claims},
		"age":          {Kind: dataset.KindNumeric, Nums: ages},
		"state":        {Kind: dataset.KindCategorical, Cats: states},
		"gender":       {Kind: dataset.KindCategorical, Cats: genders},
	}
	tbl, err := dataset.New(fields, cols)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return tbl
}

// TestDefaultRequestSelectsEverything verifies the all-"none" interaction
// keeps the whole dataset selected
func TestDefaultRequestSelectsEverything(t *testing.T) {
	engine := NewEngine(engineTable(t))

	result := engine.Apply(engine.DefaultRequest())
	if result.SelectedCount != result.TotalCount {
		t.Errorf("default request selected %d of %d rows", result.SelectedCount, result.TotalCount)
	}
	if result.ExcludedCount != 0 {
		t.Errorf("default request excluded %d rows", result.ExcludedCount)
	}
}

// TestApplyPartition verifies selected + excluded always cover the table
func TestApplyPartition(t *testing.T) {
	engine := NewEngine(engineTable(t))

	requests := []Request{
		engine.DefaultRequest(),
		{AgeMin: 25, AgeMax: 45, Categories: map[string]string{"state": "NY"}},
		{AgeMin: math.NaN(), AgeMax: math.NaN(), Categories: map[string]string{"gender": "Female"}},
	}
	for i, req := range requests {
		result := engine.Apply(req)
		if result.SelectedCount+result.ExcludedCount != result.TotalCount {
			t.Errorf("request %d: %d + %d != %d", i,
				result.SelectedCount, result.ExcludedCount, result.TotalCount)
		}
		if len(result.Table.Rows) != 7 {
			t.Errorf("request %d: table has %d rows, want 7", i, len(result.Table.Rows))
		}
	}
}

// TestApplyCategoryFilter verifies a single category predicate selects the
// expected partition
func TestApplyCategoryFilter(t *testing.T) {
	engine := NewEngine(engineTable(t))

	req := engine.DefaultRequest()
	req.Categories["state"] = "NY"
	result := engine.Apply(req)

	if result.SelectedCount != 20 {
		t.Errorf("NY filter selected %d rows, want 20", result.SelectedCount)
	}
	if result.ExcludedCount != 20 {
		t.Errorf("NY filter excluded %d rows, want 20", result.ExcludedCount)
	}
}

// TestApplyEmptySelection verifies a zero-row selection still yields the
// full table with missing cells and suppressed distribution charts
func TestApplyEmptySelection(t *testing.T) {
	engine := NewEngine(engineTable(t))

	req := engine.DefaultRequest()
	req.AgeMin = 200 // no claimant is this old
	req.AgeMax = 300
	result := engine.Apply(req)

	if result.SelectedCount != 0 {
		t.Fatalf("expected empty selection, got %d rows", result.SelectedCount)
	}
	if len(result.Table.Rows) != 7 {
		t.Fatalf("table has %d rows, want 7", len(result.Table.Rows))
	}
	for _, row := range result.Table.Rows {
		if row.Statistic == summary.StatRows {
			continue
		}
		if !math.IsNaN(row.Selected) {
			t.Errorf("%s: selected cell = %v, want NaN", row.Statistic, row.Selected)
		}
	}
	if result.Decision.ShowDistribution {
		t.Error("distribution charts should be suppressed for an empty selection")
	}
	if result.Histogram != nil || result.Box != nil {
		t.Error("no histogram or box payloads expected for an empty selection")
	}
}

// TestApplySmallSample verifies the guard between 9 and 10 selected rows
func TestApplySmallSample(t *testing.T) {
	engine := NewEngine(engineTable(t))

	// ages cycle 20..59 once, so an age interval picks interval-width rows
	req := engine.DefaultRequest()
	req.AgeMin, req.AgeMax = 20, 28 // 9 rows
	result := engine.Apply(req)
	if result.SelectedCount != 9 {
		t.Fatalf("selected %d rows, want 9", result.SelectedCount)
	}
	if result.Decision.ShowDistribution {
		t.Error("9-row selection should not get distribution charts")
	}
	if result.Decision.Advisory == "" {
		t.Error("9-row selection should carry the small-sample advisory")
	}

	req.AgeMin, req.AgeMax = 20, 29 // 10 rows
	result = engine.Apply(req)
	if result.SelectedCount != 10 {
		t.Fatalf("selected %d rows, want 10", result.SelectedCount)
	}
	if !result.Decision.ShowDistribution {
		t.Error("10-row selection should get a distribution chart decision")
	}
	if result.Histogram == nil || result.Box == nil {
		t.Error("histogram and box payloads expected for a 10-row selection")
	}
}

// TestApplyTrimsHeavyTail verifies the outlier row is trimmed from the
// plotted subset when the tail dominates
func TestApplyTrimsHeavyTail(t *testing.T) {
	engine := NewEngine(engineTable(t))

	result := engine.Apply(engine.DefaultRequest())
	if !result.Decision.ShowDistribution {
		t.Fatal("expected a distribution decision over the full dataset")
	}
	if result.Decision.Label != summary.LabelTrimmed {
		t.Errorf("label = %q, want %q", result.Decision.Label, summary.LabelTrimmed)
	}
	for _, v := range result.Decision.Values {
		if v == 500000 {
			t.Error("trimmed subset still contains the extreme outlier")
		}
	}
}

// TestFiltersOfferNoneFirst verifies every control's choices and checks the
// scatter grouping plumbs through
func TestFiltersAndScatter(t *testing.T) {
	engine := NewEngine(engineTable(t))

	filters := engine.Filters()
	if len(filters) != 2 {
		t.Fatalf("got %d filter controls, want 2", len(filters))
	}
	for _, ff := range filters {
		if len(ff.Choices) == 0 {
			t.Errorf("field %s offers no choices", ff.Field.Name)
		}
		for _, c := range ff.Choices {
			if c == "" {
				t.Errorf("field %s offers the none sentinel as an explicit choice", ff.Field.Name)
			}
		}
	}

	req := engine.DefaultRequest()
	req.ScatterGroup = "state"
	result := engine.Apply(req)
	if len(result.Scatter.Points) != result.SelectedCount {
		t.Errorf("scatter has %d points, want %d", len(result.Scatter.Points), result.SelectedCount)
	}
	for _, p := range result.Scatter.Points {
		if p.Group == "" {
			t.Error("scatter point missing its group value")
			break
		}
	}
}

// TestBundleBuilds verifies the static chart bundle computes without error
// even on a table lacking some optional fields
func TestBundleBuilds(t *testing.T) {
	engine := NewEngine(engineTable(t))

	bundle, err := engine.Bundle(context.Background())
	if err != nil {
		t.Fatalf("bundle failed: %v", err)
	}
	if len(bundle.GenderKDE.Curves) != 2 {
		t.Errorf("expected 2 KDE curves, got %d", len(bundle.GenderKDE.Curves))
	}
	if _, ok := bundle.Payload("state_bar"); !ok {
		t.Error("state_bar payload missing from bundle")
	}
	if _, ok := bundle.Payload("nope"); ok {
		t.Error("unknown payload name should not resolve")
	}
}
