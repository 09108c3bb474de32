package rope

import "fmt"

// Cut removes n bytes starting at byte position pos, like DeleteAt. In
// addition to the updated rope it returns the removed text as a rope of its
// own. The removed rope shares storage with r and is balanced.
//
// Both ropes have to be released by the client.
func (r *Rope) Cut(pos, n uint64) (updated, removed *Rope, err error) {
	if updated, err = r.DeleteAt(pos, n); err != nil {
		return nil, nil, err
	}
	removed = r.derive(buildBalanced(collectLeaves(r.root, pos, pos+n, nil)))
	return updated, removed, nil
}

// Split splits a rope at byte position pos into the text before pos and the
// text from pos on. Both parts share storage with r and are balanced.
//
// Split takes time linear in the number of leaves of r. Both ropes have to be
// released by the client.
func (r *Rope) Split(pos uint64) (left, right *Rope, err error) {
	if err := r.check(); err != nil {
		return nil, nil, err
	}
	if pos > r.root.length {
		return nil, nil, fmt.Errorf("%w: split at %d, length is %d", ErrOutOfRange, pos, r.root.length)
	}
	left = r.derive(buildBalanced(collectLeaves(r.root, 0, pos, nil)))
	right = r.derive(buildBalanced(collectLeaves(r.root, pos, r.root.length, nil)))
	tracer().Debugf("split at %d: %d + %d leaves", pos, left.LeafCount(), right.LeafCount())
	return left, right, nil
}

// collectLeaves appends the leaves covering [i, j) of n to leaves. Leaves
// lying completely inside the range are shared, partially covered ones are
// replaced by leaves on a narrowed view of the same block.
func collectLeaves(n *node, i, j uint64, leaves []*node) []*node {
	if i >= j {
		return leaves
	}
	if n.isLeaf() {
		if i == 0 && j == n.length {
			return append(leaves, n)
		}
		view, err := n.view.Slice(int(i), int(j))
		assert(err == nil, "collectLeaves: range outside of leaf")
		return append(leaves, newLeaf(view))
	}
	w := n.left.length
	if i < w {
		leaves = collectLeaves(n.left, i, min(j, w), leaves)
	}
	if j > w {
		leaves = collectLeaves(n.right, i-min(i, w), j-w, leaves)
	}
	return leaves
}
