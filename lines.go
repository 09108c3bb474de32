package rope

import (
	"bytes"
	"fmt"
	"iter"
)

// Lines are delimited by '\n'. The text after the last newline is a line of
// its own, so a rope has one more line than it has newlines, and an empty
// rope consists of a single empty line. Line and column numbers are 0-based,
// columns count bytes.
//
// Every node records the number of newlines in its subtree. Line lookups
// descend the tree guided by these counts, and scan a single leaf only.

// LineCount returns the number of lines of the rope.
func (r *Rope) LineCount() uint64 {
	if r.IsReleased() {
		return 0
	}
	return r.root.newlines + 1
}

// LineAt returns the line and column of byte position pos.
func (r *Rope) LineAt(pos uint64) (line, col uint64, err error) {
	if err = r.check(); err != nil {
		return 0, 0, err
	}
	if pos > r.root.length {
		return 0, 0, fmt.Errorf("%w: position %d, length is %d", ErrOutOfRange, pos, r.root.length)
	}
	line = newlinesBefore(r.root, pos)
	return line, pos - lineStart(r.root, line), nil
}

// LineStart returns the byte position of the first byte of line.
func (r *Rope) LineStart(line uint64) (uint64, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	if line > r.root.newlines {
		return 0, fmt.Errorf("%w: line %d, rope has %d lines", ErrOutOfRange, line, r.root.newlines+1)
	}
	return lineStart(r.root, line), nil
}

// Line returns the text of line n without its terminating newline.
func (r *Rope) Line(n uint64) (string, error) {
	start, err := r.LineStart(n)
	if err != nil {
		return "", err
	}
	end := r.root.length
	if n < r.root.newlines {
		end = lineStart(r.root, n+1) - 1
	}
	return r.Report(start, end-start)
}

// Lines returns an iterator over all lines of the rope together with their
// line numbers. Lines are returned without their terminating newline.
func (r *Rope) Lines() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		if r.IsReleased() {
			return
		}
		var line []byte
		var no uint64
		for chunk := range r.Chunks() {
			for {
				k := bytes.IndexByte(chunk, '\n')
				if k < 0 {
					line = append(line, chunk...)
					break
				}
				line = append(line, chunk[:k]...)
				if !yield(no, string(line)) {
					return
				}
				no++
				line = line[:0]
				chunk = chunk[k+1:]
			}
		}
		yield(no, string(line))
	}
}

// newlinesBefore counts the newlines in [0, pos) of n.
func newlinesBefore(n *node, pos uint64) uint64 {
	var cnt uint64
	for !n.isLeaf() {
		if pos < n.left.length {
			n = n.left
			continue
		}
		cnt += n.left.newlines
		pos -= n.left.length
		n = n.right
	}
	return cnt + uint64(bytes.Count(n.bytes()[:pos], []byte{'\n'}))
}

// lineStart returns the position following the line-th newline of n, or 0
// for line 0. n must have at least line newlines.
func lineStart(n *node, line uint64) uint64 {
	if line == 0 {
		return 0
	}
	var pos uint64
	k := line
	for !n.isLeaf() {
		if k <= n.left.newlines {
			n = n.left
			continue
		}
		k -= n.left.newlines
		pos += n.left.length
		n = n.right
	}
	text := n.bytes()
	var at int
	for ; k > 0; k-- {
		i := bytes.IndexByte(text[at:], '\n')
		assert(i >= 0, "lineStart: newline count of leaf out of sync")
		at += i + 1
	}
	return pos + uint64(at)
}
