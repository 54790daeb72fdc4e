package dataset

import (
	"math"
	"testing"
)

func buildTable(t *testing.T) *Table {
	t.Helper()
	fields := []Field{
		{Name: "claim_amount", Kind: KindNumeric},
		{Name: "age", Kind: KindNumeric},
		{Name: "state", Kind: KindCategorical},
		{Name: "authorities_contacted", Kind: KindCategorical, IncludeMissing: true},
	}
	cols := map[string]Column{
		"claim_amount":          {Kind: KindNumeric, Nums: []float64{100, 200, 300, 400}},
		"age":                   {Kind: KindNumeric, Nums: []float64{30, math.NaN(), 45, 28}},
		"state":                 {Kind: KindCategorical, Cats: []string{"NY", "OH", "NY", ""}},
		"authorities_contacted": {Kind: KindCategorical, Cats: []string{"Police", "", "Fire", "Police"}},
	}
	table, err := New(fields, cols)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return table
}

func TestNewValidatesColumns(t *testing.T) {
	fields := []Field{{Name: "claim_amount", Kind: KindNumeric}}

	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for empty field list")
	}
	if _, err := New(fields, map[string]Column{}); err == nil {
		t.Error("expected error for missing column data")
	}
	if _, err := New(fields, map[string]Column{
		"claim_amount": {Kind: KindCategorical, Cats: []string{"a"}},
	}); err == nil {
		t.Error("expected error for kind mismatch")
	}

	two := []Field{
		{Name: "claim_amount", Kind: KindNumeric},
		{Name: "age", Kind: KindNumeric},
	}
	if _, err := New(two, map[string]Column{
		"claim_amount": {Kind: KindNumeric, Nums: []float64{1, 2}},
		"age":          {Kind: KindNumeric, Nums: []float64{1}},
	}); err == nil {
		t.Error("expected error for ragged columns")
	}
}

func TestTableAccessors(t *testing.T) {
	table := buildTable(t)

	if table.Rows() != 4 {
		t.Errorf("Rows = %d, want 4", table.Rows())
	}
	if table.ID().IsEmpty() {
		t.Error("table should get a snapshot id at assembly")
	}
	if got := table.Numeric("state"); got != nil {
		t.Error("Numeric on a categorical column should return nil")
	}
	if got := table.Categorical("age"); got != nil {
		t.Error("Categorical on a numeric column should return nil")
	}
	if _, ok := table.Field("nope"); ok {
		t.Error("Field should miss on unknown names")
	}
}

func TestDistinctSkipsMissingByDefault(t *testing.T) {
	table := buildTable(t)

	got := table.Distinct("state")
	want := []string{"NY", "OH"}
	if len(got) != len(want) {
		t.Fatalf("Distinct(state) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct(state)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDistinctIncludesMissingWhenConfigured(t *testing.T) {
	table := buildTable(t)

	got := table.Distinct("authorities_contacted")
	want := []string{"Police", "", "Fire"}
	if len(got) != len(want) {
		t.Fatalf("Distinct(authorities) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct(authorities)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDistinctSortedDescending(t *testing.T) {
	table := buildTable(t)

	got := table.DistinctSorted("state", true)
	if len(got) != 2 || got[0] != "OH" || got[1] != "NY" {
		t.Errorf("DistinctSorted(state, desc) = %v, want [OH NY]", got)
	}
}

func TestNumericBoundsIgnoreMissing(t *testing.T) {
	table := buildTable(t)

	min, max := table.NumericBounds("age")
	if min != 28 || max != 45 {
		t.Errorf("NumericBounds(age) = [%v, %v], want [28, 45]", min, max)
	}

	min, max = table.NumericBounds("state")
	if !math.IsNaN(min) || !math.IsNaN(max) {
		t.Errorf("NumericBounds on a categorical column = [%v, %v], want NaN", min, max)
	}
}
