package engine

import (
	"testing"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchSummary(t *testing.T) *table.Table {
	return mustTable(t, "Match Summary",
		[]string{"Toss Winning", "Toss Decision", "Winners", "Won by", "Margin", "Stage"},
		[]string{"India", "Bat", "India", "Runs", "68", "Semi Final"},
		[]string{"South Africa", "Bowl", "South Africa", "Wickets", "9", "Semi Final"},
		[]string{"India", "Bat", "India", "Runs", "7", "Final"},
		[]string{"Canada", "Bowl", "", "", "", "Group"},
		[]string{"Australia", "Bowl", "Afghanistan", "Runs", "21", "Super 8"},
	)
}

func TestApplyFilterOps(t *testing.T) {
	tbl := matchSummary(t)

	tests := []struct {
		name   string
		filter chart.Filter
		rows   int
	}{
		{"eq text", chart.Filter{Column: "Toss Decision", Op: chart.OpEq, Value: "Bat"}, 2},
		{"ne text keeps nulls", chart.Filter{Column: "Won by", Op: chart.OpNe, Value: "Runs"}, 2},
		{"eq numeric", chart.Filter{Column: "Margin", Op: chart.OpEq, Value: "7.0"}, 1},
		{"gt", chart.Filter{Column: "Margin", Op: chart.OpGt, Value: "9"}, 2},
		{"ge", chart.Filter{Column: "Margin", Op: chart.OpGe, Value: "9"}, 3},
		{"lt skips nulls", chart.Filter{Column: "Margin", Op: chart.OpLt, Value: "100"}, 4},
		{"le", chart.Filter{Column: "Margin", Op: chart.OpLe, Value: "7"}, 1},
		{"no match", chart.Filter{Column: "Stage", Op: chart.OpEq, Value: "Warm-up"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ApplyFilter(tbl, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.rows, out.Len())
			assert.Equal(t, tbl.ColumnNames(), out.ColumnNames())
		})
	}
	assert.Equal(t, 5, tbl.Len())
}

func TestApplyFilterRejects(t *testing.T) {
	tbl := matchSummary(t)

	tests := map[string]chart.Filter{
		"missing column":      {Column: "Toss Winer", Op: chart.OpEq, Value: "India"},
		"empty column":        {Column: " ", Op: chart.OpEq, Value: "India"},
		"unknown op":          {Column: "Stage", Op: "like", Value: "Final"},
		"ordering on text":    {Column: "Stage", Op: chart.OpGt, Value: "Final"},
		"ordering on garbage": {Column: "Margin", Op: chart.OpGt, Value: "lots"},
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ApplyFilter(tbl, f)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidFilter(err))
		})
	}
}

func TestApplyThreshold(t *testing.T) {
	tbl := matchSummary(t)

	out, err := ApplyThreshold(tbl, chart.Threshold{Column: "Margin", Min: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())

	out, err = ApplyThreshold(tbl, chart.Threshold{Column: "Margin", Min: 9, Exclusive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())

	_, err = ApplyThreshold(tbl, chart.Threshold{Column: "Overs", Min: 1})
	assert.True(t, errors.IsMissingColumn(err))

	_, err = ApplyThreshold(tbl, chart.Threshold{Column: "Stage", Min: 1})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDerive(t *testing.T) {
	tbl := mustTable(t, "Bowling Summary",
		[]string{"bowlerName", "wides", "noBalls", "economy"},
		[]string{"Mark Wood", "2", "1", "7.5"},
		[]string{"Matheesha Pathirana", "", "0", "9.25"},
	)

	out, err := Derive(tbl, chart.DerivedMetric{Name: "Extras", Columns: []string{"wides", "noBalls"}})
	require.NoError(t, err)
	col, ok := out.Column("Extras")
	require.True(t, ok)
	assert.Equal(t, table.KindInt, col.Kind)

	idx, _ := out.ColumnIndex("Extras")
	n, ok := out.At(0, idx).Number()
	require.True(t, ok)
	assert.Equal(t, 3.0, n)
	assert.True(t, out.At(1, idx).IsNull())
	assert.False(t, tbl.HasColumn("Extras"))

	mixed, err := Derive(tbl, chart.DerivedMetric{Name: "odd", Columns: []string{"noBalls", "economy"}})
	require.NoError(t, err)
	col, _ = mixed.Column("odd")
	assert.Equal(t, table.KindFloat, col.Kind)

	_, err = Derive(tbl, chart.DerivedMetric{Name: "wides", Columns: []string{"noBalls"}})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = Derive(tbl, chart.DerivedMetric{Name: "x", Columns: []string{"legByes"}})
	assert.True(t, errors.IsMissingColumn(err))

	_, err = Derive(tbl, chart.DerivedMetric{Name: "x", Columns: []string{"bowlerName"}})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

// A misspelt filter column is caught before the chart is ever evaluated.
func TestValidateSpecMisspeltFilter(t *testing.T) {
	tbl := matchSummary(t)
	err := ValidateSpec(chart.Spec{
		ID: "toss", GroupBy: "Toss Decision", Metric: "Toss Winning",
		Filter:      chart.Equals("Toss Winer", "India"),
		Aggregation: chart.AggCount, Sort: chart.SortDesc, Limit: 10,
	}, tbl)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidFilter(err))
	assert.Contains(t, err.Error(), "toss")
}

func TestValidateSpec(t *testing.T) {
	tbl := mustTable(t, "Complete Batting Summary",
		[]string{"batsmanName", "4s", "6s", "total_runs", "teamInnings"},
		[]string{"Rohit Sharma", "24", "15", "257", "India"},
	)
	ok := chart.Spec{
		ID: "boundaries", GroupBy: "batsmanName", Metric: "total_boundaries",
		Derived:     &chart.DerivedMetric{Name: "total_boundaries", Columns: []string{"4s", "6s"}},
		Threshold:   &chart.Threshold{Column: "total_boundaries", Min: 1},
		Aggregation: chart.AggSum, Sort: chart.SortDesc, Limit: 10,
	}
	require.NoError(t, ValidateSpec(ok, tbl))

	noGroup := ok
	noGroup.GroupBy = "bowlerName"
	assert.True(t, errors.IsMissingColumn(ValidateSpec(noGroup, tbl)))

	textMetric := ok
	textMetric.Derived, textMetric.Threshold = nil, nil
	textMetric.Metric = "teamInnings"
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(ValidateSpec(textMetric, tbl)))

	countText := textMetric
	countText.Aggregation = chart.AggCount
	assert.NoError(t, ValidateSpec(countText, tbl))

	badThreshold := ok
	badThreshold.Threshold = &chart.Threshold{Column: "innings", Min: 5}
	assert.True(t, errors.IsMissingColumn(ValidateSpec(badThreshold, tbl)))
}
