package summary

// Display labels for the comparison table, keyed by the describe vector's
// natural statistic names.
const (
	StatRows    = "Number of Rows"
	StatAverage = "Average Value"
	StatStdDev  = "Standard Deviation"
	StatMin     = "Minimum Value"
	StatP25     = "25th Percentile Value"
	StatMedian  = "Median Value"
	StatP75     = "75th Percentile Value"
	StatMax     = "Maximum Value"
)

// Row is one aligned statistic across the three partitions
type Row struct {
	Statistic string  `json:"statistic"`
	Selected  float64 `json:"selected"`
	Excluded  float64 `json:"excluded"`
	All       float64 `json:"all"`
}

// ComparisonTable is the user-facing selected/excluded/all comparison.
// Row order and label text are a fixed display convention: the standard
// deviation row is dropped and the median appears before the average.
type ComparisonTable struct {
	Rows []Row `json:"rows"`
}

// statistic labels in the describe vector's natural order
var describeOrder = []string{
	StatRows, StatAverage, StatStdDev, StatMin, StatP25, StatMedian, StatP75, StatMax,
}

// display positions into the natural order after the std-dev drop; median
// deliberately precedes average
var displayOrder = []int{0, 3, 4, 5, 1, 6, 7}

// Compare aligns the descriptive vectors of the selected rows, the excluded
// rows, and the full dataset into one table with display labels and display
// row order. All values are rounded to cents; NaN cells mark statistics that
// are undefined over an empty partition.
func Compare(selected, excluded, all []float64) ComparisonTable {
	vectors := map[string][3]float64{}
	sel, exc, tot := Describe(selected), Describe(excluded), Describe(all)

	aligned := [][3]float64{
		{sel.Count, exc.Count, tot.Count},
		{sel.Mean, exc.Mean, tot.Mean},
		{sel.StdDev, exc.StdDev, tot.StdDev},
		{sel.Min, exc.Min, tot.Min},
		{sel.P25, exc.P25, tot.P25},
		{sel.Median, exc.Median, tot.Median},
		{sel.P75, exc.P75, tot.P75},
		{sel.Max, exc.Max, tot.Max},
	}
	for i, label := range describeOrder {
		vectors[label] = aligned[i]
	}

	table := ComparisonTable{Rows: make([]Row, 0, len(displayOrder))}
	for _, idx := range displayOrder {
		label := describeOrder[idx]
		cells := vectors[label]
		table.Rows = append(table.Rows, Row{
			Statistic: label,
			Selected:  round2(cells[0]),
			Excluded:  round2(cells[1]),
			All:       round2(cells[2]),
		})
	}
	return table
}

// Lookup finds a row by its display label
func (ct ComparisonTable) Lookup(statistic string) (Row, bool) {
	for _, row := range ct.Rows {
		if row.Statistic == statistic {
			return row, true
		}
	}
	return Row{}, false
}
