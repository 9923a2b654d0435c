package excel

import (
	"bytes"
	"testing"

	"cricdash/domain/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readBack(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	return rows
}

func TestWriteRanked(t *testing.T) {
	res := chart.RankedResult{
		SpecID: "top-run-scorers", Title: "Top run scorers", Kind: chart.KindBarH,
		XLabel: "Batsman", YLabel: "Runs",
		Entries: []chart.Entry{{Label: "Rahmanullah Gurbaz", Value: 281}, {Label: "Rohit Sharma", Value: 257}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteRanked(&buf, res))

	rows := readBack(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Batsman", "Runs"}, rows[0][:2])
	assert.Equal(t, []string{"Rahmanullah Gurbaz", "281"}, rows[1][:2])
	assert.Equal(t, []string{"Rohit Sharma", "257"}, rows[2][:2])
}

func TestWriteRankedEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteRanked(&buf, chart.RankedResult{SpecID: "x", Entries: []chart.Entry{}}))

	rows := readBack(t, &buf)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Label", "Value"}, rows[0])
}

func TestWriteHistogram(t *testing.T) {
	hist := chart.Histogram{
		SpecID: "winning-margin", Title: "Winning Margin",
		Edges: []float64{0, 50, 100},
		Series: []chart.Series{
			{Name: "Runs", Counts: []float64{3, 1}},
			{Name: "Wickets", Counts: []float64{4, 0}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteHistogram(&buf, hist))

	rows := readBack(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Bin start", "Bin end", "Runs", "Wickets"}, rows[0])
	assert.Equal(t, []string{"0", "50", "3", "4"}, rows[1])
	assert.Equal(t, []string{"50", "100", "1", "0"}, rows[2])
}
