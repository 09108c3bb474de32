package block

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, content []byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(name, content, 0o644))
	return name
}

func TestViewSliceAndSplit(t *testing.T) {
	b, err := NewAppendable(16)
	require.NoError(t, err)
	b, v, err := Append(b, []byte("Hello World"), 16)
	require.NoError(t, err)
	require.Equal(t, "Hello World", string(v.Bytes()))

	l, r, err := v.SplitAt(5)
	require.NoError(t, err)
	require.Equal(t, "Hello", string(l.Bytes()))
	require.Equal(t, " World", string(r.Bytes()))
	require.Same(t, b, l.Block())

	_, err = v.Slice(3, 12)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	empty, err := v.Slice(4, 4)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
	require.Nil(t, empty.Bytes())
}

func TestViewBytesIsCapacityLimited(t *testing.T) {
	b, v, err := Append(nil, []byte("abc"), 32)
	require.NoError(t, err)
	p := v.Bytes()
	require.Equal(t, 3, cap(p))
	_ = append(p, 'X') // must re-allocate, not write into b
	b, w, err := Append(b, []byte("def"), 32)
	require.NoError(t, err)
	require.Equal(t, "def", string(w.Bytes()))
	require.Equal(t, "abc", string(v.Bytes()))
}

func TestAppendRollsOverAtThreshold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	b1, v1, err := Append(nil, []byte("0123456789"), 16)
	require.NoError(t, err)
	b2, v2, err := Append(b1, []byte("abcdef"), 16) // exactly fills b1
	require.NoError(t, err)
	require.Same(t, b1, b2)
	require.Equal(t, 16, b1.Len())
	b3, v3, err := Append(b2, []byte("x"), 16) // one byte over threshold
	require.NoError(t, err)
	require.NotSame(t, b1, b3)
	require.Equal(t, "0123456789", string(v1.Bytes()))
	require.Equal(t, "abcdef", string(v2.Bytes()))
	require.Equal(t, "x", string(v3.Bytes()))
	require.Equal(t, 16, b3.Cap())
}

func TestAppendOversizedText(t *testing.T) {
	big := bytes.Repeat([]byte("z"), 100)
	b, v, err := Append(nil, big, 16)
	require.NoError(t, err)
	require.Equal(t, 100, b.Cap())
	require.Equal(t, 100, v.Len())
}

func TestAppendErrors(t *testing.T) {
	_, _, err := Append(nil, []byte("a"), 0)
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewAppendable(-1)
	require.ErrorIs(t, err, ErrInvalidSize)
	mapped := &Block{kind: Mapped, data: []byte("ro")}
	_, _, err = Append(mapped, []byte("a"), 16)
	require.ErrorIs(t, err, ErrNotAppendable)
}

func TestArenaAppend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	a := NewArena(8)
	v1, err := a.Append([]byte("abcd"))
	require.NoError(t, err)
	v2, err := a.Append([]byte("efgh"))
	require.NoError(t, err)
	require.Same(t, v1.Block(), v2.Block())
	v3, err := a.Append([]byte("0123456789abcdef")) // dedicated block
	require.NoError(t, err)
	v4, err := a.Append([]byte("ij"))
	require.NoError(t, err)
	require.NotSame(t, v3.Block(), v4.Block())
	blocks, n := a.Stats()
	require.Equal(t, 3, blocks)
	require.Equal(t, 26, n)
	require.Equal(t, "abcd", string(v1.Bytes()))
	require.Equal(t, "0123456789abcdef", string(v3.Bytes()))
}

func TestReadViewsWhileAppending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	a := NewArena(64)
	first, err := a.Append([]byte("abc"))
	require.NoError(t, err)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if string(first.Bytes()) != "abc" {
				t.Errorf("view changed under concurrent appends: %q", first.Bytes())
				return
			}
		}
	}()
	for i := 0; i < 1000; i++ {
		_, err := a.Append([]byte("x"))
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestMapFileChunks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	content := bytes.Repeat([]byte("0123456789"), 1000)
	name := writeTestFile(t, content)
	m, blocks, err := MapFile(name, 64)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Len(t, blocks, 157) // 156 full blocks + 16 trailing bytes
	var all []byte
	for k, b := range blocks {
		require.Equal(t, Mapped, b.Kind())
		require.Equal(t, int64(k*64), b.FileOffset())
		all = append(all, b.View().Bytes()...)
	}
	require.Equal(t, content, all)
	require.Equal(t, 16, blocks[len(blocks)-1].Len())
	m.Release()
	require.True(t, m.IsClosed())
}

func TestMappingLifetime(t *testing.T) {
	name := writeTestFile(t, []byte("Hello World"))
	m, blocks, err := MapFile(name, 4)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	v := blocks[1].View()
	v.Retain()
	require.Equal(t, 2, m.Refs())
	m.Release() // opener is done
	require.False(t, m.IsClosed())
	require.Equal(t, "o Wo", string(v.Bytes()))
	v.Release()
	require.True(t, m.IsClosed())
	require.NoError(t, m.Err())
}

func TestMapFileErrors(t *testing.T) {
	_, _, err := MapFile(filepath.Join(t.TempDir(), "missing.txt"), 64)
	require.ErrorIs(t, err, ErrMapping)
	require.True(t, errors.Is(err, fs.ErrNotExist))
	_, _, err = MapFile(t.TempDir(), 64)
	require.ErrorIs(t, err, ErrMapping)
	_, _, err = MapFile("x", 0)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapEmptyFile(t *testing.T) {
	name := writeTestFile(t, nil)
	m, blocks, err := MapFile(name, 64)
	require.NoError(t, err)
	require.Nil(t, m)
	require.Empty(t, blocks)
}
