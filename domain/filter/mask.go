package filter

// Mask is the per-record boolean selection produced by combining all
// predicates. The true entries form the "selected" partition; the complement
// forms "excluded". The two partitions are always disjoint and always cover
// the whole table.
type Mask []bool

// AllTrue returns a mask selecting every record
func AllTrue(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

// Count returns the number of selected records
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Complement returns the mask selecting exactly the excluded records
func (m Mask) Complement() Mask {
	out := make(Mask, len(m))
	for i, v := range m {
		out[i] = !v
	}
	return out
}

// Values extracts the selected entries of a numeric column
func (m Mask) Values(col []float64) []float64 {
	out := make([]float64, 0, len(col))
	for i, v := range col {
		if i < len(m) && m[i] {
			out = append(out, v)
		}
	}
	return out
}

// Strings extracts the selected entries of a categorical column
func (m Mask) Strings(col []string) []string {
	out := make([]string, 0, len(col))
	for i, v := range col {
		if i < len(m) && m[i] {
			out = append(out, v)
		}
	}
	return out
}
