package bench

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveAndLatest(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "bench.db"))
	require.NoError(t, err)
	defer s.Close()

	run := RunRecord{
		RunID:     "run-1",
		Timestamp: time.Unix(1700000000, 0),
		Results: []Result{
			{ScenarioName: "classical_syllogism", Passed: true, CyclesRun: 10},
			{ScenarioName: "depth_limit", Passed: false, Detail: "no <a --> d>", CyclesRun: 200},
		},
	}
	require.NoError(t, s.Save(run))

	latest, err := s.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-1", latest.RunID)
	require.Len(t, latest.Results, 2)
}

func TestStorageLatestOnEmptyReturnsNil(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "empty.db"))
	require.NoError(t, err)
	defer s.Close()

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}
