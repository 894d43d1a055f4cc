package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optode-data/scanmerge/internal/scan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	run := &Run{
		ScanID:         "240115",
		Systems:        2,
		MergedFrames:   95,
		MergedChannels: 28,
		Drift:          5,
		Aligned:        true,
		Diag: map[string]scan.SystemDiag{
			"a": {Wavelengths: 2, Channels: 16, RawFrames: 100, CroppedFrames: 95, SyncPulses: 2},
			"b": {Wavelengths: 2, Channels: 16, RawFrames: 98, CroppedFrames: 95, SyncPulses: 2},
		},
	}
	require.NoError(t, store.RecordRun(run))
	assert.NotEmpty(t, run.ID, "missing run ID gets filled with a fresh UUID")

	runs, err := store.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "240115", got.ScanID)
	assert.Equal(t, 2, got.Systems)
	assert.Equal(t, 95, got.MergedFrames)
	assert.Equal(t, 28, got.MergedChannels)
	assert.Equal(t, 5, got.Drift)
	assert.True(t, got.Aligned)
	assert.Equal(t, run.Diag, got.Diag)
	assert.NotZero(t, got.CreatedAt)
}

func TestRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordRun(&Run{ScanID: "240115", Systems: 1}))
	}

	runs, err := store.Runs(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(&Run{ScanID: "240115", Systems: 2}))
	require.NoError(t, store.Close())

	// Reopening an already-migrated catalog must not fail or lose rows.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
