package block

import (
	"fmt"
	"sync"
)

// DefaultAppendSize is the capacity of a fresh appendable block.
const DefaultAppendSize = 4096

// NewAppendable allocates an empty appendable block with capacity size.
func NewAppendable(size int) (*Block, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidSize, size)
	}
	return &Block{kind: Appendable, data: make([]byte, 0, size)}, nil
}

// Append copies p behind the bytes already stored in b and returns a view
// onto the freshly appended region, together with the block which now holds
// it.
//
// If b is nil or p does not fit into the remaining capacity of b, a new
// appendable block is allocated. Its capacity is maxSize, or exactly len(p)
// if p is larger than maxSize. Bytes already in b are never touched.
func Append(b *Block, p []byte, maxSize int) (*Block, View, error) {
	if maxSize <= 0 {
		return b, View{}, fmt.Errorf("%w: max block size %d", ErrInvalidSize, maxSize)
	}
	if b != nil && b.kind != Appendable {
		return b, View{}, ErrNotAppendable
	}
	if len(p) == 0 {
		return b, View{}, nil
	}
	if b == nil || len(b.data)+len(p) > cap(b.data) {
		size := max(maxSize, len(p))
		b = &Block{kind: Appendable, data: make([]byte, 0, size)}
		tracer().Debugf("allocated appendable block of %d bytes", size)
	}
	start := len(b.data)
	b.data = append(b.data, p...)
	assert(len(b.data) <= cap(b.data), "appendable block re-allocated its storage")
	return b, newView(b, start, len(p)), nil
}

// Arena hands out appendable storage for edited text. It keeps the current
// appendable block and rolls over to a new one when the block is full.
//
// All revisions derived from one rope share an arena. Append is safe for
// concurrent use, and so is reading views handed out earlier while other
// goroutines append.
type Arena struct {
	mu      sync.Mutex
	current *Block
	maxSize int
	blocks  int
	bytes   int
}

// NewArena creates an arena allocating blocks of blockSize bytes.
// A blockSize <= 0 selects DefaultAppendSize.
func NewArena(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultAppendSize
	}
	return &Arena{maxSize: blockSize}
}

// BlockSize returns the configured block capacity.
func (a *Arena) BlockSize() int {
	return a.maxSize
}

// Append copies p into the arena and returns a view onto the copy.
func (a *Arena) Append(p []byte) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	blk, view, err := Append(a.current, p, a.maxSize)
	if err != nil {
		return View{}, err
	}
	if blk != a.current {
		a.blocks++
		// oversized text gets a dedicated block; keep filling the current one
		if a.current == nil || cap(blk.data) <= a.maxSize {
			a.current = blk
		}
	}
	a.bytes += view.Len()
	return view, nil
}

// Stats returns the number of blocks allocated and bytes appended so far.
func (a *Arena) Stats() (blocks int, bytes int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blocks, a.bytes
}
