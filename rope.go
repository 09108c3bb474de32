package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"bytes"
	"fmt"
	"iter"
	"math"
	"sync/atomic"

	"github.com/npillmayer/rope/block"
)

// Rope is a handle to an immutable tree of text fragments.
//
// Editing operations never modify a rope, but return a new one which shares
// unchanged subtrees with the original. Thus ropes are persistent data
// structures.
//
// A rope handle owns a reference to its root. Clients have to call Release when
// they are done with a rope, as this is what eventually unmaps files from
// memory. Clone returns an additional handle to the same tree.
//
// Due to their internal structure ropes do have performance characteristics
// differing from Go strings or byte arrays.
//
//	Operation     |   Rope          |  String
//	--------------+-----------------+--------
//	Index         |   O(log n)      |   O(1)
//	Iterate       |   O(n)          |   O(n)
//	Insert        |   O(log n)      |   O(n)
//	Delete        |   O(k log n)    |   O(n)
//
// where k is the number of leaves a deletion touches.
type Rope struct {
	root     *node
	arena    *block.Arena
	released atomic.Bool
}

// Empty creates an empty rope with default configuration.
func Empty() *Rope {
	return New(DefaultConfig())
}

// New creates an empty rope. Text inserted into the rope or any rope derived
// from it will be stored in appendable blocks sized as configured in cfg.
func New(cfg Config) *Rope {
	cfg = cfg.normalized()
	return makeRope(newLeaf(block.View{}), block.NewArena(cfg.AppendBlockSize))
}

// FromString creates a rope holding a copy of s.
func FromString(s string) *Rope {
	return FromBytes([]byte(s), DefaultConfig())
}

// FromBytes creates a rope holding a copy of p. The bytes are copied into
// appendable blocks, one leaf per block.
func FromBytes(p []byte, cfg Config) *Rope {
	cfg = cfg.normalized()
	arena := block.NewArena(cfg.AppendBlockSize)
	var leaves []*node
	for len(p) > 0 {
		n := min(len(p), arena.BlockSize())
		view, err := arena.Append(p[:n])
		assert(err == nil, "FromBytes: cannot append to arena")
		leaves = append(leaves, newLeaf(view))
		p = p[n:]
	}
	return makeRope(buildBalanced(leaves), arena)
}

// FromBlocks creates a balanced rope with one leaf per block. This is used to
// create a rope from the mapped blocks of a file.
func FromBlocks(blocks []*block.Block, cfg Config) *Rope {
	cfg = cfg.normalized()
	leaves := make([]*node, 0, len(blocks))
	for _, b := range blocks {
		if b.Len() == 0 {
			continue
		}
		leaves = append(leaves, newLeaf(b.View()))
	}
	return makeRope(buildBalanced(leaves), block.NewArena(cfg.AppendBlockSize))
}

// makeRope creates a handle for root, retaining root.
func makeRope(root *node, arena *block.Arena) *Rope {
	assert(root != nil, "rope must have a root node")
	root.retain()
	return &Rope{root: root, arena: arena}
}

// derive creates a rope sharing r's arena.
func (r *Rope) derive(root *node) *Rope {
	return makeRope(root, r.arena)
}

// Clone returns a new handle to the same tree. The clone has to be released
// independently of r.
func (r *Rope) Clone() (*Rope, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.derive(r.root), nil
}

// Release drops the handle's reference to the tree. Releasing a rope twice
// is a no-op. The rope must not be used afterwards.
func (r *Rope) Release() {
	if r == nil || !r.released.CompareAndSwap(false, true) {
		return
	}
	r.root.release()
}

// IsReleased reports whether Release has been called for r.
func (r *Rope) IsReleased() bool {
	return r == nil || r.released.Load()
}

func (r *Rope) check() error {
	if r.IsReleased() {
		return ErrReleased
	}
	return nil
}

// Len returns the length of the rope in bytes.
func (r *Rope) Len() uint64 {
	if r.IsReleased() {
		return 0
	}
	return r.root.length
}

// IsVoid reports whether the rope holds no bytes.
func (r *Rope) IsVoid() bool {
	return r.Len() == 0
}

// String returns the complete rope as a Go string. This may be an expensive
// operation, as it will allocate a buffer for all the bytes of the rope and
// collect all fragments to a single continuous string.
func (r *Rope) String() string {
	if r.IsReleased() {
		return ""
	}
	var bf bytes.Buffer
	bf.Grow(int(r.Len()))
	for chunk := range r.Chunks() {
		_, _ = bf.Write(chunk)
	}
	return bf.String()
}

// Chunks returns an iterator over the text fragments of the rope in order.
// The fragments are views into the rope's storage and must not be modified.
func (r *Rope) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if r.IsReleased() {
			return
		}
		c := r.Cursor()
		for {
			chunk, ok := c.Next(0)
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// ChunksIn returns an iterator over the text fragments covering byte range
// [i, j), with the first and last fragment clipped to the range. If [i, j) is
// not a valid range of the rope, ErrOutOfRange is returned.
func (r *Rope) ChunksIn(i, j uint64) (iter.Seq[[]byte], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if j < i || j > r.root.length {
		return nil, fmt.Errorf("%w: chunks [%d:%d], length is %d", ErrOutOfRange, i, j, r.root.length)
	}
	return func(yield func([]byte) bool) {
		if i == j || r.IsReleased() {
			return
		}
		c, err := r.CursorAt(i)
		if err != nil {
			return
		}
		for remaining := j - i; remaining > 0; {
			chunk, ok := c.Next(int(min(remaining, math.MaxInt)))
			if !ok || !yield(chunk) {
				return
			}
			remaining -= uint64(len(chunk))
		}
	}, nil
}

// Height returns the height of the tree, where a single leaf has height 1.
func (r *Rope) Height() int {
	if r.IsReleased() {
		return 0
	}
	return height(r.root)
}

func height(n *node) int {
	if n.isLeaf() {
		return 1
	}
	return 1 + max(height(n.left), height(n.right))
}

// LeafCount returns the number of non-empty leaves of the rope.
func (r *Rope) LeafCount() int {
	cnt := 0
	for range r.Chunks() {
		cnt++
	}
	return cnt
}

// each visits all nodes in pre-order, together with their byte position and
// depth.
func (r *Rope) each(f func(n *node, pos uint64, depth int) error) error {
	if r.IsReleased() {
		return ErrReleased
	}
	return traverse(r.root, 0, 0, f)
}

func traverse(n *node, pos uint64, depth int, f func(*node, uint64, int) error) error {
	if err := f(n, pos, depth); err != nil {
		return err
	}
	if n.isLeaf() {
		return nil
	}
	if err := traverse(n.left, pos, depth+1, f); err != nil {
		return err
	}
	return traverse(n.right, pos+n.left.length, depth+1, f)
}
