package rope

import (
	"bytes"
	"fmt"
)

// IsBalanced reports whether the rope's tree satisfies the red-black
// invariants. See Check.
func (r *Rope) IsBalanced() bool {
	return r.Check() == nil
}

// Check validates structural tree invariants:
//
//   - every branch has two children, and its length and newline count equal
//     the sums of theirs,
//   - every leaf has a length and newline count matching its view,
//   - no red branch has a red child, the root is black,
//   - all paths from the root to a leaf have the same number of black nodes,
//   - only the root of an empty rope is an empty leaf.
//
// This checker is intentionally strict and should be used in tests, it is
// not used by editing operations.
func (r *Rope) Check() error {
	if err := r.check(); err != nil {
		return err
	}
	if r.root.isRed() {
		return fmt.Errorf("%w: root is red", ErrUnbalanced)
	}
	_, err := checkNode(r.root, true)
	return err
}

func checkNode(n *node, isRoot bool) (blackHeight int, err error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrUnbalanced)
	}
	if n.isLeaf() {
		if n.color != black {
			return 0, fmt.Errorf("%w: red leaf", ErrUnbalanced)
		}
		if n.length != uint64(n.view.Len()) {
			return 0, fmt.Errorf("%w: leaf length %d != view length %d",
				ErrUnbalanced, n.length, n.view.Len())
		}
		if nl := uint64(bytes.Count(n.view.Bytes(), []byte{'\n'})); n.newlines != nl {
			return 0, fmt.Errorf("%w: leaf newline count %d != %d", ErrUnbalanced, n.newlines, nl)
		}
		if n.length == 0 && !isRoot {
			return 0, fmt.Errorf("%w: empty leaf below root", ErrUnbalanced)
		}
		return 1, nil
	}
	if n.left == nil || n.right == nil {
		return 0, fmt.Errorf("%w: branch with missing child", ErrUnbalanced)
	}
	if n.length != n.left.length+n.right.length {
		return 0, fmt.Errorf("%w: branch length %d != %d + %d",
			ErrUnbalanced, n.length, n.left.length, n.right.length)
	}
	if n.newlines != n.left.newlines+n.right.newlines {
		return 0, fmt.Errorf("%w: branch newline count %d != %d + %d",
			ErrUnbalanced, n.newlines, n.left.newlines, n.right.newlines)
	}
	if n.isRed() && (n.left.isRed() || n.right.isRed()) {
		return 0, fmt.Errorf("%w: red branch with red child", ErrUnbalanced)
	}
	lh, err := checkNode(n.left, false)
	if err != nil {
		return 0, err
	}
	rh, err := checkNode(n.right, false)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: non-uniform black height (%d != %d)", ErrUnbalanced, lh, rh)
	}
	if n.color == black {
		return lh + 1, nil
	}
	return lh, nil
}
