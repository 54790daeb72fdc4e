package dataset

// FieldKind describes the domain type of a column
type FieldKind string

const (
	KindNumeric     FieldKind = "numeric"
	KindCategorical FieldKind = "categorical"
)

// Field describes a single column of a loaded table. Kind drives which
// predicate shape the filter builder produces for it, and IncludeMissing
// controls whether missing values are offered among its filter choices.
type Field struct {
	Name           string    `json:"name"`
	Label          string    `json:"label"` // user-facing label, e.g. "Accident Type"
	Kind           FieldKind `json:"kind"`
	Filterable     bool      `json:"filterable"`
	IncludeMissing bool      `json:"include_missing"`
}

// Column holds one column's values. Exactly one of Nums/Cats is populated
// according to Kind; NaN marks a missing numeric value and the empty string
// marks a missing categorical value.
type Column struct {
	Kind FieldKind
	Nums []float64
	Cats []string
}

// Len returns the number of entries in the column
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Nums)
	}
	return len(c.Cats)
}
