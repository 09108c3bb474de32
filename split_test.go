package rope

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestCutReturnsRemovedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 8) // AAAAAAAAAABBBBBBBBBB...
	defer r.Release()
	updated, removed, err := r.Cut(15, 30)
	require.NoError(t, err)
	defer updated.Release()
	defer removed.Release()
	require.Equal(t, "BBBBBCCCCCCCCCCDDDDDDDDDDEEEEE", removed.String())
	require.Equal(t, uint64(50), updated.Len())
	require.NoError(t, updated.Check())
	require.NoError(t, removed.Check())

	// fully covered leaves are shared with the original
	orig := leafSet(r)
	shared := 0
	for n := range leafSet(removed) {
		if orig[n] {
			shared++
		}
	}
	require.Equal(t, 2, shared)

	_, _, err = r.Cut(75, 10)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCutEmptyRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromString("Hello")
	defer r.Release()
	updated, removed, err := r.Cut(2, 0)
	require.NoError(t, err)
	defer updated.Release()
	defer removed.Release()
	require.Equal(t, "Hello", updated.String())
	require.True(t, removed.IsVoid())
	require.NoError(t, removed.Check())
}

func TestCutKeepsStorageAlive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromBytes([]byte("Hello World"), Config{AppendBlockSize: 4})
	updated, removed, err := r.Cut(0, 6)
	require.NoError(t, err)
	r.Release()
	updated.Release()
	require.Equal(t, "Hello ", removed.String())
	require.NoError(t, removed.Check())
	removed.Release()
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromBytes([]byte("Hello World, how are you?"), Config{AppendBlockSize: 4})
	defer r.Release()
	for _, pos := range []uint64{0, 1, 4, 11, 24, 25} {
		left, right, err := r.Split(pos)
		require.NoError(t, err)
		require.Equal(t, r.String()[:pos], left.String(), "left part of split at %d", pos)
		require.Equal(t, r.String()[pos:], right.String(), "right part of split at %d", pos)
		require.NoError(t, left.Check())
		require.NoError(t, right.Check())
		left.Release()
		right.Release()
	}
	_, _, err := r.Split(26)
	require.ErrorIs(t, err, ErrOutOfRange)
	r.Release()
	_, _, err = r.Split(0)
	require.ErrorIs(t, err, ErrReleased)
}
