package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/rope/block"
)

// --- Node types ------------------------------------------------------------

// We use 2 distinct kinds of nodes: branches and leaves. A branch always has two
// children, a leaf points to a view of a storage block. Both kinds share one
// struct type, tagged by kind, to keep tree operations free of type switches.
//
// Nodes are immutable once they have become reachable from a live rope. The only
// field changing afterwards is the reference count.
//
// Reference counts are applied lazily: a freshly built node starts with a count
// of 0 and does not hold references to its children. When a node is retained
// for the first time, it retains its children (or its block view, for leaves).
// This way nodes built and thrown away during re-balancing never disturb the
// counts of shared subtrees.

type nodeKind uint8

const (
	leafNode nodeKind = iota
	branchNode
)

type color uint8

const (
	black color = iota
	red
)

func (c color) String() string {
	if c == red {
		return "red"
	}
	return "black"
}

type node struct {
	kind        nodeKind
	color       color // leaves are always black
	length      uint64
	newlines    uint64     // number of '\n' in the subtree
	left, right *node      // branches only
	view        block.View // leaves only
	refs        atomic.Int32
}

func newLeaf(view block.View) *node {
	return &node{
		kind:     leafNode,
		color:    black,
		length:   uint64(view.Len()),
		newlines: uint64(bytes.Count(view.Bytes(), []byte{'\n'})),
		view:     view,
	}
}

func newBranch(c color, left, right *node) *node {
	assert(left != nil && right != nil, "branch needs two children")
	return &node{
		kind:     branchNode,
		color:    c,
		length:   left.length + right.length,
		newlines: left.newlines + right.newlines,
		left:     left,
		right:    right,
	}
}

func (n *node) isLeaf() bool {
	return n.kind == leafNode
}

// isRed is false for leaves and nil nodes.
func (n *node) isRed() bool {
	return n != nil && n.color == red
}

func (n *node) Len() uint64 {
	return n.length
}

// bytes returns the text of a leaf.
func (n *node) bytes() []byte {
	assert(n.isLeaf(), "bytes() called for branch node")
	return n.view.Bytes()
}

// replaceLeft returns a new branch with the left child swapped. The right
// child is shared.
func (n *node) replaceLeft(left *node) *node {
	assert(!n.isLeaf(), "replaceLeft called for leaf")
	return newBranch(n.color, left, n.right)
}

// replaceRight returns a new branch with the right child swapped. The left
// child is shared.
func (n *node) replaceRight(right *node) *node {
	assert(!n.isLeaf(), "replaceRight called for leaf")
	return newBranch(n.color, n.left, right)
}

// replace swaps the child on the given side.
func (n *node) replace(right bool, child *node) *node {
	if right {
		return n.replaceRight(child)
	}
	return n.replaceLeft(child)
}

// recolored returns n in color c. Leaves and nodes already in color c are
// returned unchanged, otherwise a copy sharing the children is created.
func (n *node) recolored(c color) *node {
	if n.isLeaf() || n.color == c {
		return n
	}
	return newBranch(c, n.left, n.right)
}

// retain adds a reference to n. On the first reference, n takes over
// references to its children or its block.
func (n *node) retain() {
	if n.refs.Add(1) > 1 {
		return
	}
	if n.isLeaf() {
		n.view.Retain()
		return
	}
	n.left.retain()
	n.right.retain()
}

// release drops a reference to n. On the last one, the references to children
// or the block view are dropped in turn.
func (n *node) release() {
	cnt := n.refs.Add(-1)
	assert(cnt >= 0, "rope node released more often than retained")
	if cnt > 0 {
		return
	}
	if n.isLeaf() {
		n.view.Release()
		return
	}
	n.left.release()
	n.right.release()
}

func (n *node) String() string {
	if n.isLeaf() {
		return fmt.Sprintf("leaf(%d)", n.length)
	}
	return fmt.Sprintf("%s(%d)", n.color, n.length)
}
