package rope

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/rope/block"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, content []byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(name, content, 0o644))
	return name
}

// fragments creates a rope with n leaves of 10 bytes each.
func fragments(t *testing.T, n int) *Rope {
	t.Helper()
	b := NewBuilder(DefaultConfig())
	for i := 0; i < n; i++ {
		require.NoError(t, b.Append([]byte(strings.Repeat(string(rune('A'+i%26)), 10))))
	}
	return b.Rope()
}

// leafSet collects the leaves of a rope, by identity.
func leafSet(r *Rope) map[*node]bool {
	leaves := make(map[*node]bool)
	_ = r.each(func(n *node, _ uint64, _ int) error {
		if n.isLeaf() {
			leaves[n] = true
		}
		return nil
	})
	return leaves
}

func TestInsertOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromString("Hello")
	defer r.Release()
	_, err := r.InsertString(6, "x")
	require.ErrorIs(t, err, ErrOutOfRange)
	require.ErrorIs(t, err, EOS)
	_, err = r.DeleteAt(3, 3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = r.DeleteAt(6, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestInsertEmptyTextSharesRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 8)
	defer r.Release()
	r2, err := r.InsertAt(35, nil)
	require.NoError(t, err)
	defer r2.Release()
	require.Same(t, r.root, r2.root)
	require.Equal(t, r.String(), r2.String())
}

func TestInsertInsideLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 64)
	defer r.Release()
	r2, err := r.InsertString(205, "xyz")
	require.NoError(t, err)
	defer r2.Release()
	require.NoError(t, r2.Check())
	s, err := r2.Report(200, 13)
	require.NoError(t, err)
	require.Equal(t, "UUUUUxyzUUUUU", s)
	require.Equal(t, r.Len()+3, r2.Len())

	// every leaf but the split one is shared
	before, after := leafSet(r), leafSet(r2)
	shared := 0
	for leaf := range before {
		if after[leaf] {
			shared++
		}
	}
	require.Equal(t, 63, shared)
	require.Equal(t, 66, len(after))
}

func TestInsertAtStartSharesRightSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 64)
	defer r.Release()
	r2, err := r.InsertString(0, ">>")
	require.NoError(t, err)
	defer r2.Release()
	require.NoError(t, r2.Check())
	require.Same(t, r.root.right, r2.root.right)
	require.True(t, strings.HasPrefix(r2.String(), ">>AAAA"))
}

func TestDeleteAcrossLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 10)
	defer r.Release()
	want := r.String()
	for _, tc := range []struct {
		pos, n uint64
	}{
		{0, 10}, {5, 10}, {10, 20}, {3, 94}, {0, 100}, {99, 1}, {50, 0}, {45, 10},
	} {
		r2, err := r.DeleteAt(tc.pos, tc.n)
		require.NoError(t, err)
		require.NoError(t, r2.Check(), "delete [%d:+%d]", tc.pos, tc.n)
		expected := want[:tc.pos] + want[tc.pos+tc.n:]
		if diff := cmp.Diff(expected, r2.String()); diff != "" {
			t.Errorf("delete [%d:+%d] mismatch (-want +got):\n%s", tc.pos, tc.n, diff)
		}
		r2.Release()
	}
	require.Equal(t, want, r.String())
}

func TestDeleteSharesUntouchedLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := fragments(t, 32)
	defer r.Release()
	r2, err := r.DeleteAt(150, 10) // exactly one leaf
	require.NoError(t, err)
	defer r2.Release()
	require.NoError(t, r2.Check())
	before, after := leafSet(r), leafSet(r2)
	require.Equal(t, 31, len(after))
	for leaf := range after {
		require.True(t, before[leaf], "leaf %v not shared", leaf)
	}
}

// TestRandomEdits applies random insertions and deletions to a rope and to a
// plain byte slice and compares both after each step.
func TestRandomEdits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(4711))
	cfg := Config{AppendBlockSize: 16}
	ref := []byte("The quick brown fox jumps over the lazy dog")
	r := FromBytes(ref, cfg)
	first, firstText := r, string(ref)
	blocks := make(map[*block.Block]bool)
	collect := func(r *Rope) {
		_ = r.each(func(n *node, _ uint64, _ int) error {
			if n.isLeaf() && n.view.Block() != nil {
				blocks[n.view.Block()] = true
			}
			return nil
		})
	}
	letters := "abcdefghijklmnopqrstuvwxyz\n"
	for i := 0; i < 2000; i++ {
		var next *Rope
		var err error
		if len(ref) == 0 || rnd.Intn(100) < 55 {
			pos := rnd.Intn(len(ref) + 1)
			text := make([]byte, 1+rnd.Intn(24))
			for j := range text {
				text[j] = letters[rnd.Intn(len(letters))]
			}
			next, err = r.InsertAt(uint64(pos), text)
			require.NoError(t, err)
			ref = append(ref[:pos:pos], append(text, ref[pos:]...)...)
		} else {
			pos := rnd.Intn(len(ref))
			n := rnd.Intn(min(40, len(ref)-pos) + 1)
			next, err = r.DeleteAt(uint64(pos), uint64(n))
			require.NoError(t, err)
			ref = append(ref[:pos:pos], ref[pos+n:]...)
		}
		if err := next.Check(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if diff := cmp.Diff(string(ref), next.String()); diff != "" {
			t.Fatalf("step %d: mismatch (-want +got):\n%s", i, diff)
		}
		collect(next)
		if r != first {
			r.Release()
		}
		r = next
	}
	require.Equal(t, firstText, first.String(), "first revision has changed")
	collect(first)
	first.Release()
	r.Release()
	for blk := range blocks {
		require.Equal(t, 0, blk.Refs(), "block %v still referenced", blk)
	}
}
