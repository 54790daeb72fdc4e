package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"claimscope/domain/dataset"
	"claimscope/internal/errors"
)

// columnRenames maps source column names to their cleaned names
var columnRenames = map[string]string{
	"total_claim_amount": "claim_amount",
	"insured_sex":        "gender",
}

// droppedColumns are administrative columns removed during cleaning
var droppedColumns = map[string]bool{
	"policy_state": true, "policy_csl": true, "policy_deductable": true,
	"policy_annual_premium": true, "umbrella_limit": true, "policy_number": true,
	"capital-gains": true, "capital-loss": true, "city": true,
	"injury_claim": true, "property_claim": true, "vehicle_claim": true,
}

// ageBracket boundaries: (lo, hi] bins of five years between 15 and 65
var ageBrackets = []struct {
	lo, hi float64
	label  string
}{
	{15, 20, "15-20"}, {20, 25, "20-25"}, {25, 30, "25-30"}, {30, 35, "30-35"},
	{35, 40, "35-40"}, {40, 45, "40-45"}, {45, 50, "45-50"}, {50, 55, "50-55"},
	{55, 60, "55-60"}, {60, 65, "60-65"},
}

// fieldCatalog declares the cleaned schema: every required column with its
// kind, display label, and filter behavior. The derived age_bracket column
// is appended during cleaning.
var fieldCatalog = []dataset.Field{
	{Name: "claim_amount", Label: "Claim Amount", Kind: dataset.KindNumeric},
	{Name: "age", Label: "Age", Kind: dataset.KindNumeric, Filterable: true},
	{Name: "gender", Label: "Gender", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "accident_type", Label: "Accident Type", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "collision_type", Label: "Collision Type", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "incident_severity", Label: "Incident Severity", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "authorities_contacted", Label: "Authorities Contacted", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "state", Label: "State", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "property_damage", Label: "Property Damage", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "bodily_injuries", Label: "Number of Bodily Injuries", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "police_report_available", Label: "Police Report Available?", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "auto_make", Label: "Auto Make", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "auto_model", Label: "Auto Model", Kind: dataset.KindCategorical, Filterable: true},
	{Name: "auto_year", Label: "Auto Year", Kind: dataset.KindCategorical, Filterable: true},
}

// Clean validates the raw table against the required schema and builds the
// immutable session table:
//
//   - total_claim_amount/insured_sex are renamed
//   - gender values are title-cased
//   - "?" collision types become "Unattended Vehicle"
//   - age_bracket is derived from age (five-year bins, 15 to 65)
//   - administrative policy columns are dropped
//
// A missing required column is a fatal SCHEMA_MISMATCH.
func Clean(raw *RawTable) (*dataset.Table, error) {
	renamed := applyRenames(raw)

	for _, f := range fieldCatalog {
		if !renamed.HasColumn(f.Name) {
			return nil, errors.SchemaMismatch(f.Name)
		}
	}

	n := len(renamed.Rows)
	cols := make(map[string]dataset.Column, len(fieldCatalog)+1)

	for _, f := range fieldCatalog {
		switch f.Kind {
		case dataset.KindNumeric:
			nums := make([]float64, n)
			for i, row := range renamed.Rows {
				nums[i] = parseNumeric(row[f.Name])
			}
			cols[f.Name] = dataset.Column{Kind: dataset.KindNumeric, Nums: nums}
		case dataset.KindCategorical:
			cats := make([]string, n)
			for i, row := range renamed.Rows {
				cats[i] = cleanCategory(f.Name, row[f.Name])
			}
			cols[f.Name] = dataset.Column{Kind: dataset.KindCategorical, Cats: cats}
		}
	}

	// Derived age brackets for the age-group charts
	brackets := make([]string, n)
	for i, age := range cols["age"].Nums {
		brackets[i] = ageBracketFor(age)
	}
	cols["age_bracket"] = dataset.Column{Kind: dataset.KindCategorical, Cats: brackets}

	fields := make([]dataset.Field, len(fieldCatalog), len(fieldCatalog)+1)
	copy(fields, fieldCatalog)
	fields = append(fields, dataset.Field{
		Name: "age_bracket", Label: "Age Group", Kind: dataset.KindCategorical,
	})

	tbl, err := dataset.New(fields, cols)
	if err != nil {
		return nil, errors.LoadFailed("failed to assemble dataset", err)
	}
	return tbl, nil
}

// RequiredColumns lists the cleaned schema's column names
func RequiredColumns() []string {
	out := make([]string, len(fieldCatalog))
	for i, f := range fieldCatalog {
		out[i] = f.Name
	}
	return out
}

func applyRenames(raw *RawTable) *RawTable {
	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		if to, ok := columnRenames[h]; ok {
			headers[i] = to
		} else {
			headers[i] = h
		}
	}

	rows := make([]RawRow, len(raw.Rows))
	for i, row := range raw.Rows {
		out := make(RawRow, len(row))
		for k, v := range row {
			if droppedColumns[k] {
				continue
			}
			if to, ok := columnRenames[k]; ok {
				out[to] = v
			} else {
				out[k] = v
			}
		}
		rows[i] = out
	}
	return &RawTable{Headers: headers, Rows: rows}
}

func parseNumeric(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func cleanCategory(field, value string) string {
	switch field {
	case "gender":
		return titleCase(value)
	case "collision_type":
		if value == "?" {
			return "Unattended Vehicle"
		}
	}
	return value
}

// titleCase uppercases the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func ageBracketFor(age float64) string {
	if math.IsNaN(age) {
		return ""
	}
	for _, b := range ageBrackets {
		if age > b.lo && age <= b.hi {
			return b.label
		}
	}
	return ""
}

// Load is the one-call path from file to session table
func Load(filePath, sheet string) (*dataset.Table, error) {
	raw, err := NewReader(filePath, sheet).Read()
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to read %s", filePath), err)
	}
	return Clean(raw)
}
