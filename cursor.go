package rope

// Cursor reads the text of a rope as a sequence of byte chunks, from left to
// right.
//
// A cursor keeps the path from the root to its current leaf. When a leaf is
// exhausted, it walks up the path until it finds a branch whose right side has
// not been visited, then descends to the leftmost leaf of that side.
//
// Cursors are single-pass; re-reading requires a fresh cursor. A cursor does
// not own a reference to the rope and must not be used after the rope has been
// released.
type Cursor struct {
	path LeafPath
	done bool
}

// Cursor creates a cursor positioned at the start of the rope.
func (r *Rope) Cursor() *Cursor {
	c := &Cursor{path: LeafPath{steps: make([]step, 0, 16)}}
	if r.IsReleased() {
		c.done = true
		return c
	}
	c.path.leftmost(r.root)
	return c
}

// CursorAt creates a cursor positioned at byte position pos.
func (r *Rope) CursorAt(pos uint64) (*Cursor, error) {
	path, err := r.Locate(pos)
	if err != nil {
		return nil, err
	}
	return &Cursor{path: *path}, nil
}

// Next returns up to max bytes starting at the current position and advances
// the cursor. max <= 0 returns the rest of the current leaf. If the text is
// exhausted, ok is false.
//
// The returned slice points into the rope's storage and must not be modified.
func (c *Cursor) Next(max int) (chunk []byte, ok bool) {
	if c == nil || c.done {
		return nil, false
	}
	for c.path.offset >= c.path.leaf.length {
		if !c.advance() {
			c.done = true
			return nil, false
		}
	}
	text := c.path.leaf.bytes()[c.path.offset:]
	if max > 0 && len(text) > max {
		text = text[:max:max]
	}
	c.path.offset += uint64(len(text))
	return text, true
}

// Position returns the byte position of the cursor within the rope.
func (c *Cursor) Position() uint64 {
	if c == nil || c.path.leaf == nil {
		return 0
	}
	if c.done {
		return c.path.LeafStart() + c.path.leaf.length
	}
	return c.path.LeafStart() + c.path.offset
}

// advance moves to the next leaf in order. Returns false if there is none.
func (c *Cursor) advance() bool {
	steps := c.path.steps
	for len(steps) > 0 && steps[len(steps)-1].right {
		steps = steps[:len(steps)-1]
	}
	if len(steps) == 0 {
		return false
	}
	top := &steps[len(steps)-1]
	top.right = true
	c.path.steps = steps
	c.path.leftmost(top.branch.right)
	return true
}
