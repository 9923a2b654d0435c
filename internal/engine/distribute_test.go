package engine

import (
	"testing"

	"cricdash/domain/chart"
	"cricdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marginSpec() chart.DistributionSpec {
	return chart.DistributionSpec{
		ID: "margin", Title: "Winning Margin", Metric: "Margin", Bins: 2,
		Series: []chart.SeriesFilter{
			{Name: "Runs", Filter: chart.Equals("Won by", "Runs")},
			{Name: "Wickets", Filter: chart.Equals("Won by", "Wickets")},
		},
	}
}

func TestDistributeSharedEdges(t *testing.T) {
	tbl := mustTable(t, "Match Summary",
		[]string{"Won by", "Margin"},
		[]string{"Runs", "1"},
		[]string{"Wickets", "2"},
		[]string{"Runs", "3"},
		[]string{"Wickets", "4"},
		[]string{"Runs", "5"},
		[]string{"", ""},
	)

	hist, err := Distribute(tbl, marginSpec())
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3, 5}, hist.Edges)
	require.Len(t, hist.Series, 2)
	assert.Equal(t, "Runs", hist.Series[0].Name)
	assert.Equal(t, []float64{1, 2}, hist.Series[0].Counts)
	assert.Equal(t, []float64{1, 1}, hist.Series[1].Counts)
}

func TestDistributeSingleSeries(t *testing.T) {
	tbl := mustTable(t, "Batting Summary", []string{"runs"}, []string{"40"}, []string{"40"})

	hist, err := Distribute(tbl, chart.DistributionSpec{ID: "runs", Metric: "runs", Bins: 4})
	require.NoError(t, err)

	require.Len(t, hist.Series, 1)
	assert.Equal(t, "runs", hist.Series[0].Name)
	assert.Len(t, hist.Edges, 5)
	assert.Equal(t, 40.0, hist.Edges[0])
	assert.Equal(t, 41.0, hist.Edges[4])
	assert.Equal(t, []float64{2, 0, 0, 0}, hist.Series[0].Counts)
}

func TestDistributeEmpty(t *testing.T) {
	tbl := mustTable(t, "Match Summary",
		[]string{"Won by", "Margin"},
		[]string{"Runs", "12"},
	)
	spec := marginSpec()
	spec.Filter = chart.Equals("Won by", "Super Over")

	hist, err := Distribute(tbl, spec)
	require.NoError(t, err)
	assert.Empty(t, hist.Edges)
	require.Len(t, hist.Series, 2)
	assert.Empty(t, hist.Series[0].Counts)
}

func TestDistributeRejects(t *testing.T) {
	tbl := mustTable(t, "Match Summary", []string{"Won by", "Margin"}, []string{"Runs", "12"})

	spec := marginSpec()
	spec.Bins = 0
	_, err := Distribute(tbl, spec)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	spec = marginSpec()
	spec.Metric = "Won by"
	_, err = Distribute(tbl, spec)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	spec = marginSpec()
	spec.Series[1].Filter = chart.Equals("Won", "Wickets")
	_, err = Distribute(tbl, spec)
	assert.True(t, errors.IsInvalidFilter(err))
}
