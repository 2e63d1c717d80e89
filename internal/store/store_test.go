package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewRun(t *testing.T) {
	run := NewRun("ensemble.xlsx", 40, 3, 12, 1)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "ensemble.xlsx", run.DatasetPath)
	assert.Equal(t, 40, run.Scenarios)
	assert.Equal(t, 3, run.Excluded)
	assert.Equal(t, 12, run.Pairs)
	assert.Equal(t, 1, run.Dropped)
	assert.WithinDuration(t, time.Now(), run.CreatedAt, time.Minute)

	// IDs must differ between runs.
	assert.NotEqual(t, run.ID, NewRun("ensemble.xlsx", 0, 0, 0, 0).ID)
}

func TestSaveRunAndRecentRuns(t *testing.T) {
	s := openTestStore(t)

	run := NewRun("ensemble.xlsx", 40, 3, 12, 1)
	categories := []RunCategory{
		{RunID: run.ID, Category: "C1", N: 8, Median: 2.4, Q25: 2.1, Q75: 2.9},
		{RunID: run.ID, Category: "C2", N: 4, Median: 1.8, Q25: 1.6, Q75: 2.0},
	}
	require.NoError(t, s.SaveRun(run, categories))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "ensemble.xlsx", runs[0].DatasetPath)
	assert.Equal(t, 12, runs[0].Pairs)

	got, err := s.Categories(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C1", got[0].Category)
	assert.Equal(t, 8, got[0].N)
	assert.InDelta(t, 2.4, got[0].Median, 1e-12)
	assert.Equal(t, "C2", got[1].Category)
}

func TestSaveRunDuplicateID(t *testing.T) {
	s := openTestStore(t)

	run := NewRun("ensemble.xlsx", 1, 0, 0, 0)
	require.NoError(t, s.SaveRun(run, nil))
	require.Error(t, s.SaveRun(run, nil))
}

func TestSaveRunEnforcesForeignKeys(t *testing.T) {
	s := openTestStore(t)

	run := NewRun("ensemble.xlsx", 1, 0, 1, 0)
	orphan := []RunCategory{
		{RunID: "no-such-run", Category: "C1", N: 1, Median: 2.4, Q25: 2.1, Q75: 2.9},
	}
	require.Error(t, s.SaveRun(run, orphan))

	// The failed transaction must leave nothing behind.
	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)

	older := NewRun("old.xlsx", 1, 0, 0, 0)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := NewRun("new.xlsx", 2, 0, 0, 0)
	require.NoError(t, s.SaveRun(older, nil))
	require.NoError(t, s.SaveRun(newer, nil))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new.xlsx", runs[0].DatasetPath)
	assert.Equal(t, "old.xlsx", runs[1].DatasetPath)

	limited, err := s.RecentRuns(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new.xlsx", limited[0].DatasetPath)
}

func TestRecentRunsDefaultLimit(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.RecentRuns(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCategoriesUnknownRun(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Categories("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}
