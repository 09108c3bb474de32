package rope

import (
	"fmt"

	"github.com/npillmayer/rope/block"
)

// InsertAt inserts text at byte position pos and returns a new rope. The
// text is copied into the rope's arena. If pos is greater than the length of
// the rope, ErrOutOfRange is returned.
//
// Inserting an empty text returns a new handle to the unchanged tree.
func (r *Rope) InsertAt(pos uint64, text []byte) (*Rope, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if pos > r.root.length {
		return nil, fmt.Errorf("%w: insert at %d, length is %d", ErrOutOfRange, pos, r.root.length)
	}
	if len(text) == 0 {
		return r.derive(r.root), nil
	}
	view, err := r.arena.Append(text)
	if err != nil {
		return nil, err
	}
	root, err := insertLeaf(r.root, pos, newLeaf(view))
	if err != nil {
		return nil, err
	}
	tracer().Debugf("insert %d bytes at %d", len(text), pos)
	return r.derive(root), nil
}

// InsertString inserts s at byte position pos and returns a new rope.
func (r *Rope) InsertString(pos uint64, s string) (*Rope, error) {
	return r.InsertAt(pos, []byte(s))
}

// insertLeaf returns a new root with leaf inserted at pos.
func insertLeaf(root *node, pos uint64, leaf *node) (*node, error) {
	path, err := locate(root, pos)
	if err != nil {
		return nil, err
	}
	target := path.leaf
	var replacement *node
	switch {
	case target.length == 0: // only the root of an empty rope
		return leaf, nil
	case path.offset == 0:
		replacement = newBranch(red, leaf, target)
	case path.offset == target.length:
		replacement = newBranch(red, target, leaf)
	default:
		// split the leaf first, then insert at the new leaf boundary
		root = splitLeaf(path)
		return insertLeaf(root, pos, leaf)
	}
	return rebuildInserted(path.steps, replacement), nil
}

// splitLeaf replaces the leaf at the end of path by a red branch holding the
// parts of the leaf before and after the path's offset.
func splitLeaf(path *LeafPath) *node {
	prefix, suffix, err := path.leaf.view.SplitAt(int(path.offset))
	assert(err == nil, "splitLeaf: offset outside of leaf")
	branch := newBranch(red, newLeaf(prefix), newLeaf(suffix))
	return rebuildInserted(path.steps, branch)
}

// DeleteAt removes n bytes starting at byte position pos and returns a new
// rope. If the range [pos, pos+n) exceeds the rope, ErrOutOfRange is returned.
//
// A deletion spanning several leaves is performed leaf by leaf, each step
// taking out the part of the range which falls into the leaf at pos.
func (r *Rope) DeleteAt(pos, n uint64) (*Rope, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if pos > r.root.length || n > r.root.length-pos {
		return nil, fmt.Errorf("%w: delete [%d:+%d], length is %d", ErrOutOfRange, pos, n, r.root.length)
	}
	root := r.root
	for remaining := n; remaining > 0; {
		path, err := locate(root, pos)
		if err != nil {
			return nil, err
		}
		cnt := min(remaining, path.leaf.length-path.offset)
		assert(cnt > 0, "delete located an exhausted leaf")
		root = deleteInLeaf(path, cnt)
		remaining -= cnt
	}
	if n > 0 {
		tracer().Debugf("delete %d bytes at %d", n, pos)
	}
	return r.derive(root), nil
}

// deleteInLeaf removes cnt bytes at the path's offset from the path's leaf and
// returns a new root. The bytes to remove must not reach beyond the leaf.
func deleteInLeaf(path *LeafPath, cnt uint64) *node {
	leaf := path.leaf
	from, to := path.offset, path.offset+cnt
	assert(to <= leaf.length, "delete range exceeds leaf")
	view := leaf.view
	switch {
	case from == 0 && to == leaf.length: // the whole leaf
		if len(path.steps) == 0 {
			return newLeaf(block.View{})
		}
		return rebuildRemoved(path.steps)
	case from == 0: // leading part, keep the suffix
		suffix, err := view.Slice(int(to), view.Len())
		assert(err == nil, "deleteInLeaf: cannot slice suffix")
		return rebuild(path.steps, newLeaf(suffix))
	case to == leaf.length: // trailing part, keep the prefix
		prefix, err := view.Slice(0, int(from))
		assert(err == nil, "deleteInLeaf: cannot slice prefix")
		return rebuild(path.steps, newLeaf(prefix))
	}
	// interior: split into prefix and suffix
	prefix, err := view.Slice(0, int(from))
	assert(err == nil, "deleteInLeaf: cannot slice prefix")
	suffix, err := view.Slice(int(to), view.Len())
	assert(err == nil, "deleteInLeaf: cannot slice suffix")
	return rebuildInserted(path.steps, newBranch(red, newLeaf(prefix), newLeaf(suffix)))
}

// Report returns the n bytes starting at pos as a string.
func (r *Rope) Report(pos, n uint64) (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}
	if pos > r.root.length || n > r.root.length-pos {
		return "", ErrOutOfRange
	}
	p := make([]byte, n)
	if _, err := r.ReadAt(p, int64(pos)); err != nil {
		return "", err
	}
	return string(p), nil
}
