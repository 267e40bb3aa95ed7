package solver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/tree"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	strategy := NewTable()
	key := TableKey{Node: tree.NodeId(2), Bucket: cardabs.BucketId(5)}
	strategy.Get(key, 3).Add([]int32{4, 0, 1})

	bp := SnapshotStrategy(strategy)
	require.Len(t, bp.Entries, 1)

	restored := bp.Restore()
	require.Equal(t, []int32{4, 0, 1}, restored.Get(key, 3).Get())
}

func TestSaveLoadBlueprintFileRoundTrip(t *testing.T) {
	t.Parallel()
	strategy := NewTable()
	key := TableKey{Node: tree.NodeId(9), Bucket: cardabs.BucketId(1)}
	strategy.Get(key, 2).Add([]int32{7, 3})
	bp := SnapshotStrategy(strategy)
	bp.Version = 1
	bp.Iterations = 42

	path := filepath.Join(t.TempDir(), "strategy.bin")
	require.NoError(t, SaveBlueprintFile(bp, path))

	loaded, err := LoadBlueprintFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, len(bp.Entries))
	require.Equal(t, 1, loaded.Version)
	require.Equal(t, 42, loaded.Iterations)

	restored := loaded.Restore()
	require.Equal(t, []int32{7, 3}, restored.Get(key, 2).Get())
}

func TestLoadBlueprintFileMissingReturnsError(t *testing.T) {
	t.Parallel()
	_, err := LoadBlueprintFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}
