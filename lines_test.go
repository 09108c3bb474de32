package rope

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

const poem = "Roses are red,\nviolets are blue,\n\nsugar is sweet\nand so are you.\n"

func TestLineCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	e := Empty()
	defer e.Release()
	require.Equal(t, uint64(1), e.LineCount())
	r := FromBytes([]byte(poem), Config{AppendBlockSize: 7})
	defer r.Release()
	require.Equal(t, uint64(6), r.LineCount())
	r2, err := r.DeleteAt(14, 1) // join the first two lines
	require.NoError(t, err)
	defer r2.Release()
	require.Equal(t, uint64(5), r2.LineCount())
	require.NoError(t, r2.Check())
}

func TestLineAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromBytes([]byte(poem), Config{AppendBlockSize: 7})
	defer r.Release()
	for pos := 0; pos <= len(poem); pos++ {
		line, col, err := r.LineAt(uint64(pos))
		require.NoError(t, err)
		before := poem[:pos]
		wantLine := uint64(strings.Count(before, "\n"))
		wantCol := uint64(pos - (strings.LastIndexByte(before, '\n') + 1))
		require.Equal(t, wantLine, line, "line of position %d", pos)
		require.Equal(t, wantCol, col, "column of position %d", pos)
	}
	_, _, err := r.LineAt(uint64(len(poem) + 1))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromBytes([]byte(poem), Config{AppendBlockSize: 7})
	defer r.Release()
	want := strings.Split(poem, "\n")
	for n, text := range want {
		line, err := r.Line(uint64(n))
		require.NoError(t, err)
		require.Equal(t, text, line, "line %d", n)
		start, err := r.LineStart(uint64(n))
		require.NoError(t, err)
		require.Equal(t, uint64(len(strings.Join(want[:n], "\n")))+uint64(min(n, 1)), start)
	}
	_, err := r.Line(uint64(len(want)))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLinesIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rope")
	defer teardown()
	//
	r := FromBytes([]byte(poem), Config{AppendBlockSize: 5})
	defer r.Release()
	var got []string
	for n, line := range r.Lines() {
		require.Equal(t, uint64(len(got)), n)
		got = append(got, line)
	}
	require.Equal(t, strings.Split(poem, "\n"), got)

	for n, line := range r.Lines() {
		require.Equal(t, uint64(0), n)
		require.Equal(t, "Roses are red,", line)
		break
	}
	e := Empty()
	defer e.Release()
	got = got[:0]
	for _, line := range e.Lines() {
		got = append(got, line)
	}
	require.Equal(t, []string{""}, got)
}
