package tabular

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimscope/internal/errors"
)

const sampleCSV = `policy_number,total_claim_amount,age,insured_sex,accident_type,collision_type,incident_severity,authorities_contacted,state,property_damage,bodily_injuries,police_report_available,auto_make,auto_model,auto_year
1001,52080,34,MALE,Multi-vehicle Collision,Rear Collision,Major Damage,Police,NY,YES,1,YES,Saab,92x,2004
1002,4550,41,female,Vehicle Theft,?,Trivial Damage,,OH,NO,0,NO,Nissan,Pathfinder,2012
1003,63400,27,FEMALE,Single Vehicle Collision,Front Collision,Total Loss,Fire,SC,YES,2,YES,BMW,X5,1999
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoadCleansColumns(t *testing.T) {
	tbl, err := Load(writeSample(t), "")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Rows())

	// Renames applied
	assert.Equal(t, []float64{52080, 4550, 63400}, tbl.Numeric("claim_amount"))
	assert.Nil(t, tbl.Numeric("total_claim_amount"))

	// Gender title-cased
	assert.Equal(t, []string{"Male", "Female", "Female"}, tbl.Categorical("gender"))

	// "?" collision type mapped to a readable category
	assert.Equal(t, "Unattended Vehicle", tbl.Categorical("collision_type")[1])

	// Administrative columns dropped
	_, ok := tbl.Field("policy_number")
	assert.False(t, ok)
}

func TestLoadDerivesAgeBrackets(t *testing.T) {
	tbl, err := Load(writeSample(t), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"30-35", "40-45", "25-30"}, tbl.Categorical("age_bracket"))
}

func TestAgeBracketEdges(t *testing.T) {
	// bins are (lo, hi]: 20 belongs to 15-20, 15 and 70 fall outside
	assert.Equal(t, "15-20", ageBracketFor(20))
	assert.Equal(t, "20-25", ageBracketFor(21))
	assert.Equal(t, "60-65", ageBracketFor(65))
	assert.Equal(t, "", ageBracketFor(15))
	assert.Equal(t, "", ageBracketFor(70))
	assert.Equal(t, "", ageBracketFor(math.NaN()))
}

func TestCleanMissingColumnIsSchemaMismatch(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"age", "state"},
		Rows:    []RawRow{{"age": "30", "state": "NY"}},
	}
	_, err := Clean(raw)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaMismatch, errors.GetCode(err))
}

func TestCleanMissingAuthoritiesStaysMissing(t *testing.T) {
	tbl, err := Load(writeSample(t), "")
	require.NoError(t, err)

	assert.Equal(t, "", tbl.Categorical("authorities_contacted")[1])
	// missing value is not offered as a filter choice
	for _, choice := range tbl.Distinct("authorities_contacted") {
		assert.NotEqual(t, "", choice)
	}
}

func TestParseNumeric(t *testing.T) {
	assert.Equal(t, 42.5, parseNumeric("42.5"))
	assert.True(t, math.IsNaN(parseNumeric("")))
	assert.True(t, math.IsNaN(parseNumeric("n/a")))
}
