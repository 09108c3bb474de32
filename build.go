package rope

import (
	"math/bits"

	"github.com/npillmayer/rope/block"
)

// buildBalanced assembles leaves into a valid red-black tree.
//
// Leaves are split into halves recursively, which places every leaf at depth
// D-1 or D, with D = ceil(log2(n)). Branches at depth D-1 are colored red, all
// other branches black. Then a path to a leaf at depth D has the same number of
// black nodes as a path to a leaf at depth D-1, and red branches have leaf
// children only.
func buildBalanced(leaves []*node) *node {
	if len(leaves) == 0 {
		return newLeaf(block.View{})
	}
	if len(leaves) == 1 {
		return leaves[0]
	}
	d := bits.Len(uint(len(leaves) - 1)) // ceil(log2(n)) for n >= 2
	return buildRange(leaves, 0, d-1)
}

func buildRange(leaves []*node, depth, redDepth int) *node {
	if len(leaves) == 1 {
		return leaves[0]
	}
	mid := len(leaves) / 2
	left := buildRange(leaves[:mid], depth+1, redDepth)
	right := buildRange(leaves[mid:], depth+1, redDepth)
	c := black
	if depth == redDepth && depth > 0 {
		c = red
	}
	return newBranch(c, left, right)
}

// Builder collects text fragments and creates a balanced rope from them.
//
// Fragments are either copied into appendable blocks (Append) or referenced as
// they are (AppendBlock). The zero Builder is not valid, clients have to use
// NewBuilder.
type Builder struct {
	leaves []*node
	arena  *block.Arena
	done   bool
}

// NewBuilder creates a new and empty rope builder.
func NewBuilder(cfg Config) *Builder {
	cfg = cfg.normalized()
	return &Builder{arena: block.NewArena(cfg.AppendBlockSize)}
}

// Append copies p into the builder's arena and adds it as a fragment.
func (b *Builder) Append(p []byte) error {
	if b.done {
		return ErrIllegalArguments
	}
	for len(p) > 0 {
		n := min(len(p), b.arena.BlockSize())
		view, err := b.arena.Append(p[:n])
		if err != nil {
			return err
		}
		b.leaves = append(b.leaves, newLeaf(view))
		p = p[n:]
	}
	return nil
}

// AppendBlock adds all bytes of blk as a fragment, without copying.
func (b *Builder) AppendBlock(blk *block.Block) error {
	if b.done || blk == nil {
		return ErrIllegalArguments
	}
	if blk.Len() > 0 {
		b.leaves = append(b.leaves, newLeaf(blk.View()))
	}
	return nil
}

// Rope returns the rope built from all fragments. It is illegal to continue
// adding fragments after Rope has been called.
func (b *Builder) Rope() *Rope {
	b.done = true
	if len(b.leaves) == 0 {
		tracer().Debugf("rope builder: rope is void")
	}
	return makeRope(buildBalanced(b.leaves), b.arena)
}
