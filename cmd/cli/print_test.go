package main

import (
	"bytes"
	"testing"

	"cricdash/domain/chart"
	"cricdash/internal/profiling"

	"github.com/stretchr/testify/assert"
)

func TestPrintOutcomes(t *testing.T) {
	var buf bytes.Buffer
	printOutcomes(&buf, []chart.Outcome{
		{
			ID: "most-runs", Title: "Top Run Scorers", Status: chart.StatusReady,
			Ranked: &chart.RankedResult{
				Kind: chart.KindBarH, XLabel: "Total Runs", YLabel: "Batsman",
				Entries: []chart.Entry{{Label: "Rahmanullah Gurbaz", Value: 281}, {Label: "Rohit Sharma", Value: 257}},
			},
		},
		{ID: "most-extras", Title: "Most Extras", Status: chart.StatusUnavailable, Reason: `column "wides" not found`},
		{
			ID: "winning-margins", Title: "Distribution of Winning Margins", Status: chart.StatusReady,
			Histogram: &chart.Histogram{
				Edges:  []float64{1, 3.5, 6},
				Series: []chart.Series{{Name: "Wins by Runs", Counts: []float64{2, 1}}},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Top Run Scorers (most-runs)")
	assert.Contains(t, out, "BATSMAN")
	assert.Contains(t, out, "Rahmanullah Gurbaz")
	assert.Contains(t, out, "281")
	assert.Contains(t, out, `unavailable: column "wides" not found`)
	assert.Contains(t, out, "3.5 - 6")
	assert.Contains(t, out, "WINS BY RUNS")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	printProfile(&buf, []profiling.ColumnProfile{
		{Name: "runs", Kind: "number", Count: 3, Summary: &profiling.Summary{Mean: 100.0 / 3, Median: 30, Min: 10, Max: 60}},
		{Name: "team", Kind: "string", Count: 3, Distinct: 2, Top: []profiling.TopValue{{Value: "India", Count: 2}, {Value: "England", Count: 1}}},
	})

	out := buf.String()
	assert.Contains(t, out, "33.33")
	assert.Contains(t, out, "India (2), England (1)")
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "7", number(7))
	assert.Equal(t, "142.86", number(142.857142))
}
