package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cricdash/internal/config"
	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchSummaryConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Match Summary.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	return &config.Config{
		Engine: config.EngineConfig{Workers: 2, DefaultPageSize: 10},
		Data:   config.DataConfig{Datasets: []config.DatasetFile{{Name: config.MatchSummary, Path: path}}},
	}
}

func TestInitRecordsRejectedCharts(t *testing.T) {
	cfg := matchSummaryConfig(t, "Winners,Toss Winning,Toss Decision,Won by,Winning Margin,Stage\n"+
		"India,India,Bat,Runs,7,Final\n")
	c, err := New(cfg, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, c.Init(context.Background()))
	assert.Equal(t, []string{config.MatchSummary}, c.Registry.Names())

	// Player Of The Match is absent from the file.
	require.Len(t, c.Rejections, 1)
	assert.Equal(t, "player-of-the-match", c.Rejections[0].ID)
	assert.True(t, errors.IsMissingColumn(c.Rejections[0].Err))
	assert.Equal(t, []string{"most-wins", "toss-decisions", "winning-margins"}, c.Catalog.IDs(config.MatchSummary))
}

func TestInitFailsOnMissingFile(t *testing.T) {
	cfg := matchSummaryConfig(t, "")
	cfg.Data.Datasets[0].Path = filepath.Join(t.TempDir(), "absent.csv")
	c, err := New(cfg, logging.Discard())
	require.NoError(t, err)

	err = c.Init(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeLoadFailed, errors.GetCode(err))
	assert.Empty(t, c.Registry.Names())
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}
