package config

import (
	"path/filepath"
	"testing"

	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "testdata")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, 50, cfg.Engine.DefaultPageSize)
	assert.Equal(t, logging.LogLevelInfo, cfg.LogLevel)

	require.Len(t, cfg.Data.Datasets, 6)
	assert.Equal(t, MatchSummary, cfg.Data.Datasets[0].Name)
	assert.Equal(t, filepath.Join("testdata", "Match Summary.csv"), cfg.Data.Datasets[0].Path)
	assert.Equal(t, CompleteBowlingSummary, cfg.Data.Datasets[5].Name)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "data")
	t.Setenv("PORT", "9090")
	t.Setenv("EVAL_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PLAYER_INFO_FILE", "/srv/players.xlsx")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, logging.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, "/srv/players.xlsx", cfg.Data.Datasets[3].Path)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string][2]string{
		"workers not a number": {"EVAL_WORKERS", "many"},
		"zero workers":         {"EVAL_WORKERS", "0"},
		"bad level":            {"LOG_LEVEL", "LOUD"},
		"bad port":             {"PORT", "http"},
		"zero page size":       {"DEFAULT_PAGE_SIZE", "0"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
