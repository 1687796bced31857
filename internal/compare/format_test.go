package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonFixture(t *testing.T) *ComparisonResult {
	t.Helper()
	engine := NewCompareEngine()
	result, err := engine.Compare(threePolicies(), admissionPlan(), 1)
	require.NoError(t, err)
	return result
}

func TestTableFormatter(t *testing.T) {
	tf := &TableFormatter{}
	output := tf.Format(comparisonFixture(t))

	assert.Contains(t, output, "POLICY COMPARISON")
	assert.Contains(t, output, "Family size: 1")
	assert.Contains(t, output, "Silver HMO *")
	assert.Contains(t, output, "Gold PPO")
	assert.Contains(t, output, "Bronze HDHP")
	assert.Contains(t, output, "RECOMMENDATION")
	assert.Contains(t, output, "Alternatives worth a look:")
	assert.Contains(t, output, "* lowest total annual cost")
}

func TestTableFormatterSinglePolicyOmitsMarker(t *testing.T) {
	engine := NewCompareEngine()
	result, err := engine.Compare(threePolicies()[:1], admissionPlan(), 1)
	require.NoError(t, err)

	tf := &TableFormatter{}
	output := tf.Format(result)

	assert.NotContains(t, output, "Silver HMO *")
	assert.NotContains(t, output, "* lowest total annual cost")
}

func TestTableFormatterFormatAnalysis(t *testing.T) {
	result := comparisonFixture(t)
	tf := &TableFormatter{}

	// The bronze plan is last after ranking and carries the HSA flag.
	output := tf.FormatAnalysis(&result.Analyses[2])

	assert.Contains(t, output, "Bronze HDHP (HDHP)")
	assert.Contains(t, output, "Premiums:             $2000")
	assert.Contains(t, output, "Total annual cost:    $8500")
	assert.Contains(t, output, "HSA eligible")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	result := comparisonFixture(t)
	jf := &JSONFormatter{}
	output, err := jf.Format(result)
	require.NoError(t, err)

	var decoded ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Equal(t, result.FamilySize, decoded.FamilySize)
	assert.Equal(t, result.Recommendation.BestValue, decoded.Recommendation.BestValue)
	assert.Len(t, decoded.Analyses, len(result.Analyses))
}

func TestJSONFormatterPretty(t *testing.T) {
	jf := &JSONFormatter{Pretty: true}
	output, err := jf.Format(comparisonFixture(t))
	require.NoError(t, err)
	assert.Contains(t, output, "\n  ")
}

func TestCSVFormatter(t *testing.T) {
	cf := &CSVFormatter{}
	output, err := cf.Format(comparisonFixture(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4, "header plus one row per policy")
	assert.Equal(t, "Policy ID", records[0][0])
	assert.Len(t, records[1], 14)

	assert.Equal(t, "silver", records[1][0])
	assert.Equal(t, "6000.00", records[1][6])
	assert.Equal(t, "yes", records[3][13])
}
