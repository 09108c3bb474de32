package rope

// Red-black re-balancing on a recorded path.
//
// All functions in here are pure: they build new nodes for everything on the
// path and share all other subtrees. Branches are recolored by copying them.

// --- Insertion -------------------------------------------------------------

// rebuildInserted copies the path bottom-up, replacing the subtree below the
// last step by child. child may be a red branch which violates the
// red-red constraint with its parent; balance() repairs this at the first
// black ancestor, possibly pushing a red node further up. The root is always
// made black.
func rebuildInserted(path []step, child *node) *node {
	for i := len(path) - 1; i >= 0; i-- {
		parent := path[i].branch.replace(path[i].right, child)
		child = balance(parent)
	}
	return child.recolored(black)
}

// balance resolves a red child with a red grandchild below a black node n.
// There are four configurations, depending on the sides of the red child (c)
// and red grandchild (g):
//
//	left-left:   n(c(g(a,b),x),d)  or  left-right:  n(c(a,g(b,x)),d)
//	right-left:  n(a,c(g(b,x),d))  or  right-right: n(a,c(b,g(x,d)))
//
// Each is rotated into red(black(a,b), black(x,d)), which keeps the black height
// of n and moves the red node one level up.
func balance(n *node) *node {
	if n.isLeaf() || n.isRed() {
		return n
	}
	l, r := n.left, n.right
	switch {
	case l.isRed() && l.left.isRed(): // left-left
		g := l.left
		return newBranch(red,
			newBranch(black, g.left, g.right),
			newBranch(black, l.right, r))
	case l.isRed() && l.right.isRed(): // left-right
		g := l.right
		return newBranch(red,
			newBranch(black, l.left, g.left),
			newBranch(black, g.right, r))
	case r.isRed() && r.left.isRed(): // right-left
		g := r.left
		return newBranch(red,
			newBranch(black, l, g.left),
			newBranch(black, g.right, r.right))
	case r.isRed() && r.right.isRed(): // right-right
		g := r.right
		return newBranch(red,
			newBranch(black, l, r.left),
			newBranch(black, g.left, g.right))
	}
	return n
}

// --- Path copy without re-balancing ----------------------------------------

// rebuild copies the path bottom-up, replacing the subtree below the last step
// by child. Used when child has the same black height and color constraints
// as the subtree it replaces, e.g. a leaf replacing a leaf.
func rebuild(path []step, child *node) *node {
	for i := len(path) - 1; i >= 0; i-- {
		child = path[i].branch.replace(path[i].right, child)
	}
	return child
}

// --- Deletion --------------------------------------------------------------

// rebuildRemoved removes the leaf at the end of path from the tree and returns
// the new root. The leaf's sibling takes the place of their parent.
//
// If the parent was black and the sibling cannot absorb the parent's black by
// turning from red to black, the sibling's subtree is one black node short.
// This deficit is carried upwards by fixLeftShort/fixRightShort until a node
// can compensate for it, or until the root is reached, where it reduces the
// black height of the whole tree.
func rebuildRemoved(path []step) *node {
	assert(len(path) > 0, "cannot remove the root leaf")
	last := path[len(path)-1]
	parent := last.branch
	sibling := parent.left
	if !last.right {
		sibling = parent.right
	}
	child, short := sibling, false
	if parent.color == black {
		if sibling.isRed() {
			child = sibling.recolored(black)
		} else {
			short = true
		}
	}
	for i := len(path) - 2; i >= 0; i-- {
		s := path[i]
		if !short {
			child = s.branch.replace(s.right, child)
			continue
		}
		if s.right {
			child, short = fixRightShort(s.branch.color, s.branch.left, child)
		} else {
			child, short = fixLeftShort(s.branch.color, child, s.branch.right)
		}
	}
	return child.recolored(black)
}

// fixLeftShort builds a branch of color c from children x and w, where the
// black height of x is one less than the black height of w. It returns the
// new subtree and whether it is still one black node short compared to the
// branch it replaces.
//
// x is black whenever it is short. w is a branch: its black height is at
// least 2, as x's black height is at least 1.
func fixLeftShort(c color, x, w *node) (*node, bool) {
	assert(!w.isLeaf(), "sibling of a short subtree cannot be a leaf")
	if w.isRed() {
		// sibling red: the parent is black. Rotate w up and solve the problem
		// below the now red former parent, which has a black sibling of x.
		inner, short := fixLeftShort(red, x, w.left)
		assert(!short, "red parent must absorb black deficit")
		return newBranch(black, inner, w.right), false
	}
	switch {
	case w.right.isRed():
		// far nephew red: rotate left, far nephew turns black
		return newBranch(c,
			newBranch(black, x, w.left),
			w.right.recolored(black)), false
	case w.left.isRed():
		// near nephew red: double rotation
		nl := w.left
		return newBranch(c,
			newBranch(black, x, nl.left),
			newBranch(black, nl.right, w.right)), false
	}
	// sibling and nephews black: sibling turns red, parent absorbs if red
	return newBranch(black, x, w.recolored(red)), c == black
}

// fixRightShort is the mirror image of fixLeftShort, with the short subtree x
// on the right and its sibling w on the left.
func fixRightShort(c color, w, x *node) (*node, bool) {
	assert(!w.isLeaf(), "sibling of a short subtree cannot be a leaf")
	if w.isRed() {
		inner, short := fixRightShort(red, w.right, x)
		assert(!short, "red parent must absorb black deficit")
		return newBranch(black, w.left, inner), false
	}
	switch {
	case w.left.isRed():
		return newBranch(c,
			w.left.recolored(black),
			newBranch(black, w.right, x)), false
	case w.right.isRed():
		nr := w.right
		return newBranch(c,
			newBranch(black, w.left, nr.left),
			newBranch(black, nr.right, x)), false
	}
	return newBranch(black, w.recolored(red), x), c == black
}
