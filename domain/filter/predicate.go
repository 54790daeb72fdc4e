package filter

import (
	"math"

	"claimscope/domain/dataset"
)

// Predicate is a boolean test over one record, derived from one field's
// current filter selection. Inert predicates (Active == false) always pass;
// deactivating a field therefore never removes rows on that field's account.
type Predicate struct {
	Field  string
	Active bool
	test   func(row int) bool
}

// Test evaluates the predicate for one row
func (p Predicate) Test(row int) bool {
	if !p.Active {
		return true
	}
	return p.test(row)
}

// Inert returns the constant-true predicate for a deactivated field
func Inert(field string) Predicate {
	return Predicate{Field: field}
}

// CategoryEquals builds an equality predicate for a categorical field.
// The empty string is the "none" sentinel and yields an inert predicate,
// as does a choice that is not among the field's observed values (stale
// control state after a data change is treated as "no filter").
func CategoryEquals(t *dataset.Table, field string, choice string) Predicate {
	if choice == "" {
		return Inert(field)
	}
	known := false
	for _, v := range t.Distinct(field) {
		if v == choice {
			known = true
			break
		}
	}
	if !known {
		return Inert(field)
	}

	cats := t.Categorical(field)
	return Predicate{
		Field:  field,
		Active: true,
		test: func(row int) bool {
			return cats[row] == choice
		},
	}
}

// NumericRange builds a closed-interval predicate lo <= v <= hi for a
// numeric field. Missing values never satisfy the interval. A range covering
// the field's full observed extent still counts as active; it simply selects
// every non-missing row.
func NumericRange(t *dataset.Table, field string, lo, hi float64) Predicate {
	nums := t.Numeric(field)
	return Predicate{
		Field:  field,
		Active: true,
		test: func(row int) bool {
			v := nums[row]
			if math.IsNaN(v) {
				return false
			}
			return lo <= v && v <= hi
		},
	}
}

// Combine conjunction-reduces all predicates into one selection mask over
// rows records. With zero active predicates the mask is all-true.
func Combine(rows int, preds ...Predicate) Mask {
	mask := AllTrue(rows)
	for _, p := range preds {
		if !p.Active {
			continue
		}
		for i := 0; i < rows; i++ {
			if mask[i] && !p.test(i) {
				mask[i] = false
			}
		}
	}
	return mask
}
