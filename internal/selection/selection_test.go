package selection

import (
	"testing"

	"cricdash/domain/table"
	"cricdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tables map[string]*table.Table

func (m tables) Get(name string) (*table.Table, error) {
	tbl, ok := m[name]
	if !ok {
		return nil, errors.NotFound("dataset " + name)
	}
	return tbl, nil
}

func fixture(t *testing.T) tables {
	t.Helper()
	matches, err := table.FromStrings("Match Summary", []string{"Winners", "Stage"}, [][]string{
		{"Afghanistan", "Group"},
		{"India", "Super 8"},
		{"South Africa", "Semi Final"},
		{"India", "Semi Final"},
		{"India", "Final"},
	})
	require.NoError(t, err)
	players, err := table.FromStrings("Player Info", []string{"name", "team"}, [][]string{{"Virat Kohli", "India"}})
	require.NoError(t, err)
	return tables{"Match Summary": matches, "Player Info": players}
}

func TestNewSelectionAllStages(t *testing.T) {
	sel, err := NewSelection(fixture(t), "Match Summary", "")
	require.NoError(t, err)
	assert.Equal(t, 5, sel.Table().Len())
	assert.Equal(t, "", sel.Stage())

	stages, err := sel.Stages()
	require.NoError(t, err)
	assert.Equal(t, []string{"Group", "Super 8", "Semi Final", "Final"}, stages)
}

func TestNewSelectionStageFilter(t *testing.T) {
	sel, err := NewSelection(fixture(t), "Match Summary", "Semi Final")
	require.NoError(t, err)
	assert.Equal(t, "Match Summary", sel.Dataset())
	assert.Equal(t, 2, sel.Table().Len())

	stages, err := sel.Stages()
	require.NoError(t, err)
	assert.Len(t, stages, 4)
}

func TestNewSelectionErrors(t *testing.T) {
	reg := fixture(t)

	_, err := NewSelection(reg, "Fielding Summary", "")
	assert.True(t, errors.IsNotFound(err))

	_, err = NewSelection(reg, "Match Summary", "Quarter Final")
	assert.True(t, errors.IsInvalidFilter(err))

	_, err = NewSelection(reg, "Player Info", "Final")
	assert.True(t, errors.IsInvalidFilter(err))

	sel, err := NewSelection(reg, "Player Info", "")
	require.NoError(t, err)
	_, err = sel.Stages()
	assert.True(t, errors.IsNotFound(err))
}
