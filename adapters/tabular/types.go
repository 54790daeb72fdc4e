package tabular

// RawRow maps column name to the raw cell text of one record
type RawRow map[string]string

// RawTable is the untyped result of reading a claims file, before cleaning
// and schema validation
type RawTable struct {
	Headers []string
	Rows    []RawRow
}

// HasColumn reports whether the raw table carries a column
func (r *RawTable) HasColumn(name string) bool {
	for _, h := range r.Headers {
		if h == name {
			return true
		}
	}
	return false
}
