package dataset

import (
	"fmt"
	"math"
	"sort"

	"claimscope/domain/core"
)

// Table is an immutable-for-the-session columnar view of the loaded claims
// data. It is built once at load time and never mutated afterwards; all
// filtering works by deriving boolean masks over its rows.
type Table struct {
	id     core.SnapshotID
	fields []Field
	index  map[string]int
	cols   map[string]Column
	rows   int
}

// New assembles a Table from ordered field descriptors and their columns.
// Every column must have one entry per row.
func New(fields []Field, cols map[string]Column) (*Table, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("table needs at least one field")
	}

	rows := -1
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		col, ok := cols[f.Name]
		if !ok {
			return nil, fmt.Errorf("no column data for field %q", f.Name)
		}
		if col.Kind != f.Kind {
			return nil, fmt.Errorf("field %q declared %s but column holds %s", f.Name, f.Kind, col.Kind)
		}
		if rows == -1 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d entries, expected %d", f.Name, col.Len(), rows)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		index[f.Name] = i
	}

	return &Table{
		id:     core.NewSnapshotID(),
		fields: fields,
		index:  index,
		cols:   cols,
		rows:   rows,
	}, nil
}

// ID returns the snapshot identifier assigned at load time
func (t *Table) ID() core.SnapshotID {
	return t.id
}

// Rows returns the number of records
func (t *Table) Rows() int {
	return t.rows
}

// Fields returns the ordered field descriptors
func (t *Table) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field looks up a field descriptor by name
func (t *Table) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Numeric returns the values of a numeric column. The returned slice is the
// table's backing storage; callers must treat it as read-only.
func (t *Table) Numeric(name string) []float64 {
	col, ok := t.cols[name]
	if !ok || col.Kind != KindNumeric {
		return nil
	}
	return col.Nums
}

// Categorical returns the values of a categorical column. The returned slice
// is the table's backing storage; callers must treat it as read-only.
func (t *Table) Categorical(name string) []string {
	col, ok := t.cols[name]
	if !ok || col.Kind != KindCategorical {
		return nil
	}
	return col.Cats
}

// Distinct returns the distinct observed values of a categorical column in
// first-observed order. Missing values are offered only when the field's
// missing-value policy includes them.
func (t *Table) Distinct(name string) []string {
	field, ok := t.Field(name)
	if !ok {
		return nil
	}
	cats := t.Categorical(name)
	if cats == nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range cats {
		if v == "" && !field.IncludeMissing {
			continue
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// DistinctSorted returns Distinct ordered lexically, descending when desc is
// set. Used for choice lists with a natural order such as auto_year.
func (t *Table) DistinctSorted(name string, desc bool) []string {
	out := t.Distinct(name)
	sort.Strings(out)
	if desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// NumericBounds returns the observed min and max of a numeric column,
// ignoring missing values
func (t *Table) NumericBounds(name string) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, v := range t.Numeric(name) {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}
