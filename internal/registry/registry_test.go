package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"cricdash/adapters/excel"
	"cricdash/domain/table"
	"cricdash/internal/config"
	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls atomic.Int32
	fail  string
}

func (s *stubSource) Load(ctx context.Context, name, path string) (*table.Table, error) {
	s.calls.Add(1)
	if name == s.fail {
		return nil, errors.LoadFailed(path, fmt.Errorf("malformed"))
	}
	return table.FromStrings(name, []string{"Stage"}, [][]string{{"Final"}})
}

func files(names ...string) []config.DatasetFile {
	out := make([]config.DatasetFile, len(names))
	for i, n := range names {
		out[i] = config.DatasetFile{Name: n, Path: n + ".csv"}
	}
	return out
}

func TestInitLoadsOnce(t *testing.T) {
	src := &stubSource{}
	reg := New(logging.Discard())

	require.NoError(t, reg.Init(context.Background(), src, files(config.MatchSummary, config.PlayerInfo)))
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, []string{config.MatchSummary, config.PlayerInfo}, reg.Names())

	err := reg.Init(context.Background(), src, files(config.BattingSummary))
	require.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, []string{config.MatchSummary, config.PlayerInfo}, reg.Names())
}

func TestInitFailureIsFatal(t *testing.T) {
	reg := New(logging.Discard())
	err := reg.Init(context.Background(), &stubSource{fail: config.BowlingSummary},
		files(config.MatchSummary, config.BowlingSummary))

	require.Error(t, err)
	assert.Equal(t, errors.CodeLoadFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), config.BowlingSummary)
	assert.Empty(t, reg.Names())
	assert.Empty(t, reg.All())
}

func TestInitRejectsDuplicateNames(t *testing.T) {
	reg := New(logging.Discard())
	err := reg.Init(context.Background(), &stubSource{}, files(config.PlayerInfo, config.PlayerInfo))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestGetAndAll(t *testing.T) {
	reg := New(logging.Discard())
	require.NoError(t, reg.Init(context.Background(), &stubSource{}, files(config.MatchSummary)))

	tbl, err := reg.Get(config.MatchSummary)
	require.NoError(t, err)
	assert.Equal(t, config.MatchSummary, tbl.Name())

	_, err = reg.Get("Fielding Summary")
	assert.True(t, errors.IsNotFound(err))

	all := reg.All()
	delete(all, config.MatchSummary)
	_, err = reg.Get(config.MatchSummary)
	assert.NoError(t, err)
}

func TestInitFromFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Match Summary.csv")
	require.NoError(t, os.WriteFile(path, []byte("Team 1,Team 2,Winners,Stage\nIndia,South Africa,India,Final\n"), 0o644))

	reg := New(logging.Discard())
	err := reg.Init(context.Background(), excel.NewSource(logging.Discard()),
		[]config.DatasetFile{{Name: config.MatchSummary, Path: path}})
	require.NoError(t, err)

	tbl, err := reg.Get(config.MatchSummary)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	stages, err := tbl.DistinctText("Stage")
	require.NoError(t, err)
	assert.Equal(t, []string{"Final"}, stages)
}
