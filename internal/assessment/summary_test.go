package assessment

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		totalScore float64
		totalMax   float64
		average    string
		status     Status
	}{
		{
			name:    "empty list hits the zero guard",
			raw:     `[]`,
			average: "0",
			status:  StatusFail,
		},
		{
			name:       "mixed subjects",
			raw:        `[{"subject":"Math","type":"quiz","score":8,"total":10},{"subject":"Math","type":"final","score":40,"total":50},{"subject":"Science","type":"assignment","score":9,"total":10}]`,
			totalScore: 57,
			totalMax:   70,
			average:    "81.43",
			status:     StatusPass,
		},
		{
			name:       "two decimals",
			raw:        `[{"score":1,"total":3}]`,
			totalScore: 1,
			totalMax:   3,
			average:    "33.33",
			status:     StatusFail,
		},
		{
			name:       "exact ratio keeps two decimals",
			raw:        `[{"score":1,"total":8}]`,
			totalScore: 1,
			totalMax:   8,
			average:    "12.50",
			status:     StatusFail,
		},
		{
			name:       "exactly fifty passes",
			raw:        `[{"score":5,"total":10}]`,
			totalScore: 5,
			totalMax:   10,
			average:    "50.00",
			status:     StatusPass,
		},
		{
			name:       "rounded up to fifty passes",
			raw:        `[{"score":49.996,"total":100}]`,
			totalScore: 49.996,
			totalMax:   100,
			average:    "50.00",
			status:     StatusPass,
		},
		{
			name:       "null counts as zero",
			raw:        `[{"score":null,"total":10},{"score":6,"total":null}]`,
			totalScore: 6,
			totalMax:   10,
			average:    "60.00",
			status:     StatusPass,
		},
		{
			name:       "zero max with scores",
			raw:        `[{"score":4,"total":0}]`,
			totalScore: 4,
			average:    "0",
			status:     StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := decodeRecords(t, tt.raw)
			got := Summarize(recs)

			assert.Equal(t, tt.totalScore, got.TotalScore)
			assert.Equal(t, tt.totalMax, got.TotalMax)
			assert.Equal(t, tt.average, got.AverageText())
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestRoundHalfAway(t *testing.T) {
	assert.Equal(t, 0.13, roundHalfAway(0.125, 2))
	assert.Equal(t, -0.13, roundHalfAway(-0.125, 2))
	assert.Equal(t, 33.33, roundHalfAway(100.0/3, 2))
	assert.Equal(t, 66.67, roundHalfAway(200.0/3, 2))
}

func TestSummarizeEmptyValues(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, Summary{Status: StatusFail}, got)
}

func TestSummarizeMissingFieldPropagatesNaN(t *testing.T) {
	recs := decodeRecords(t, `[{"score":10,"total":20},{"type":"quiz","subject":"X"}]`)

	got := Summarize(recs)

	assert.True(t, math.IsNaN(got.TotalScore))
	assert.True(t, math.IsNaN(got.TotalMax))
	assert.True(t, math.IsNaN(got.Average))
	assert.Equal(t, "NaN", got.AverageText())
	assert.Equal(t, StatusFail, got.Status)
}

func TestSummarizeIgnoresAlternateFieldNames(t *testing.T) {
	recs := []Record{
		{Score: Num(10), Total: Num(10)},
		{Marks: Num(10), TotalMarks: Num(10)},
	}

	got := Summarize(recs)

	assert.True(t, math.IsNaN(got.TotalScore))
	assert.Equal(t, StatusFail, got.Status)
}

func TestSummarizeNonNumericPoisons(t *testing.T) {
	recs := []Record{
		{Score: Num(10), Total: Num(10)},
		{Score: Invalid("abc"), Total: Num(10)},
	}

	got := Summarize(recs)

	assert.True(t, math.IsNaN(got.TotalScore))
	assert.Equal(t, float64(20), got.TotalMax)
	assert.Equal(t, StatusFail, got.Status)
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	finite := Summarize([]Record{{Score: Num(57), Total: Num(70)}})
	raw, err := json.Marshal(finite)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_score":57,"total_max":70,"average":"81.43","status":"Pass"}`, string(raw))

	var back Summary
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, finite, back)

	poisoned := Summarize([]Record{{Subject: "X"}})
	raw, err = json.Marshal(poisoned)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_score":"NaN","total_max":"NaN","average":"NaN","status":"Fail"}`, string(raw))

	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, math.IsNaN(back.TotalScore))
	assert.True(t, math.IsNaN(back.Average))
	assert.Equal(t, StatusFail, back.Status)
}
