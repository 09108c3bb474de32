package rope

// step is an entry in a LeafPath: a branch and the side descended into.
type step struct {
	branch *node
	right  bool
}

// LeafPath is the path from the root of a rope to a leaf, together with an
// offset within the leaf.
//
// LeafPaths are transient. They refer to nodes of a tree without owning them
// and become meaningless as soon as the rope they have been created for is
// released.
type LeafPath struct {
	steps  []step // root first
	leaf   *node
	offset uint64
}

// Locate finds the leaf containing byte position pos. For a position at a leaf
// boundary, the leaf starting at pos is returned. Position Len() is valid and
// results in a path to the rightmost leaf with offset equal to its length.
//
// Returns ErrOutOfRange if pos > Len().
func (r *Rope) Locate(pos uint64) (*LeafPath, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return locate(r.root, pos)
}

func locate(root *node, pos uint64) (*LeafPath, error) {
	if pos > root.length {
		return nil, ErrOutOfRange
	}
	path := &LeafPath{steps: make([]step, 0, 16)}
	n := root
	for !n.isLeaf() {
		if n.left.length > pos {
			path.steps = append(path.steps, step{branch: n})
			n = n.left
		} else {
			path.steps = append(path.steps, step{branch: n, right: true})
			pos -= n.left.length
			n = n.right
		}
	}
	path.leaf = n
	path.offset = pos
	return path, nil
}

// leftmost descends from n to its leftmost leaf, recording the branches passed.
func (lp *LeafPath) leftmost(n *node) {
	for !n.isLeaf() {
		lp.steps = append(lp.steps, step{branch: n})
		n = n.left
	}
	lp.leaf = n
	lp.offset = 0
}

// Depth returns the number of branches above the leaf.
func (lp *LeafPath) Depth() int {
	return len(lp.steps)
}

// Offset returns the offset within the leaf.
func (lp *LeafPath) Offset() uint64 {
	return lp.offset
}

// Leaf returns the text of the leaf the path leads to. The bytes must not be
// modified.
func (lp *LeafPath) Leaf() []byte {
	if lp.leaf == nil {
		return nil
	}
	return lp.leaf.bytes()
}

// LeafStart returns the byte position of the start of the leaf within the rope.
func (lp *LeafPath) LeafStart() uint64 {
	var pos uint64
	for _, s := range lp.steps {
		if s.right {
			pos += s.branch.left.length
		}
	}
	return pos
}
