package profiling

import (
	"testing"

	"cricdash/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	tbl, err := table.FromStrings("Batting Summary",
		[]string{"batsmanName", "teamInnings", "runs", "SR"},
		[][]string{
			{"Rohit Sharma", "India", "92", "224.39"},
			{"Travis Head", "Australia", "76", ""},
			{"Rohit Sharma", "India", "8", "160"},
			{"Virat Kohli", "India", "", "128.81"},
			{"Mitchell Marsh", "Australia", "37", "131.5"},
		})
	require.NoError(t, err)

	profiles := Profile(tbl)
	require.Len(t, profiles, 4)

	team := profiles[1]
	assert.Equal(t, "teamInnings", team.Name)
	assert.Equal(t, "string", team.Kind)
	assert.Equal(t, 2, team.Distinct)
	assert.Nil(t, team.Summary)
	assert.Equal(t, []TopValue{{Value: "India", Count: 3}, {Value: "Australia", Count: 2}}, team.Top)

	runs := profiles[2]
	assert.Equal(t, 4, runs.Count)
	assert.Equal(t, 1, runs.Missing)
	require.NotNil(t, runs.Summary)
	assert.InDelta(t, 53.25, runs.Summary.Mean, 1e-9)
	assert.Equal(t, 8.0, runs.Summary.Min)
	assert.Equal(t, 92.0, runs.Summary.Max)
	assert.InDelta(t, 56.5, runs.Summary.Median, 1e-9)
	assert.Empty(t, runs.Top)

	sr := profiles[3]
	assert.Equal(t, "float", sr.Kind)
	assert.Equal(t, 1, sr.Missing)
}

func TestProfileSingleValue(t *testing.T) {
	tbl, err := table.FromStrings("Bowling Summary", []string{"maiden"}, [][]string{{"2"}, {""}})
	require.NoError(t, err)

	p := Profile(tbl)[0]
	require.NotNil(t, p.Summary)
	assert.Equal(t, 0.0, p.Summary.StdDev)
	assert.Equal(t, 2.0, p.Summary.Median)
}

func TestTopKeepsEncounterOrderOnTies(t *testing.T) {
	order := []string{"Bat", "Bowl", "Field", "Keep"}
	counts := map[string]int{"Bat": 2, "Bowl": 2, "Field": 5, "Keep": 2}
	assert.Equal(t, []TopValue{{"Field", 5}, {"Bat", 2}, {"Bowl", 2}}, top(order, counts))
}

func TestProfileEmptyTable(t *testing.T) {
	tbl, err := table.FromStrings("Player Info", []string{"name"}, nil)
	require.NoError(t, err)

	p := Profile(tbl)
	require.Len(t, p, 1)
	assert.Equal(t, 0, p[0].Count)
	assert.Empty(t, p[0].Top)
}
