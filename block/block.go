package block

import (
	"fmt"
	"sync/atomic"
)

// Kind distinguishes mapped from appendable blocks.
type Kind uint8

const (
	// Appendable blocks are grow-only heap buffers holding edited text.
	Appendable Kind = iota
	// Mapped blocks are read-only windows onto a memory mapped file.
	Mapped
)

func (k Kind) String() string {
	switch k {
	case Appendable:
		return "appendable"
	case Mapped:
		return "mapped"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Block is an immutable-by-contract byte region.
//
// For appendable blocks, data grows up to cap(data); bytes below len(data)
// have been handed out and are never written again.
type Block struct {
	kind    Kind
	data    []byte
	mapping *Mapping // mapped blocks only
	offset  int64    // file offset of data[0], mapped blocks only
	refs    atomic.Int32
}

// Kind returns the kind of block.
func (b *Block) Kind() Kind {
	return b.kind
}

// Len returns the number of bytes currently stored in the block.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Cap returns the capacity of the block. For mapped blocks this equals Len.
func (b *Block) Cap() int {
	if b == nil {
		return 0
	}
	return cap(b.data)
}

// FileOffset returns the position of the block's first byte in the mapped
// file. It is 0 for appendable blocks.
func (b *Block) FileOffset() int64 {
	return b.offset
}

// Refs returns the number of live views on this block.
func (b *Block) Refs() int {
	return int(b.refs.Load())
}

// View returns a view onto all bytes currently in the block.
func (b *Block) View() View {
	return newView(b, 0, len(b.data))
}

func (b *Block) retain() {
	if b.refs.Add(1) == 1 && b.mapping != nil {
		b.mapping.Retain()
	}
}

func (b *Block) release() {
	n := b.refs.Add(-1)
	assert(n >= 0, "block released more often than retained")
	if n == 0 && b.mapping != nil {
		b.mapping.Release()
	}
}

func (b *Block) String() string {
	return fmt.Sprintf("[%s block %d/%d refs=%d]", b.kind, len(b.data), cap(b.data), b.Refs())
}

// --- Views -----------------------------------------------------------------

// View is a window [start, start+length) onto a block.
//
// A view captures its bytes when it is created and never reads the block's
// storage header again. Appending to the block therefore does not race with
// readers of views handed out earlier.
//
// The zero View is valid and empty.
type View struct {
	blk    *Block
	start  int
	length int
	data   []byte // blk.data[start:start+length], capacity-limited
}

func newView(b *Block, start, length int) View {
	if length == 0 {
		return View{blk: b, start: start}
	}
	end := start + length
	return View{blk: b, start: start, length: length, data: b.data[start:end:end]}
}

// Block returns the block the view refers to, which may be nil for an
// empty view.
func (v View) Block() *Block {
	return v.blk
}

// Len returns the length of the view in bytes.
func (v View) Len() int {
	return v.length
}

// IsEmpty reports whether the view covers no bytes.
func (v View) IsEmpty() bool {
	return v.length == 0
}

// Start returns the offset of the view within its block.
func (v View) Start() int {
	return v.start
}

// Bytes returns the bytes of the view. The slice is capacity-limited, appending
// to it will never write into the block. Clients must not modify the
// returned bytes; for mapped blocks doing so faults.
func (v View) Bytes() []byte {
	return v.data
}

// Slice narrows the view to the view-relative range [i, j).
func (v View) Slice(i, j int) (View, error) {
	if i < 0 || j < i || j > v.length {
		return View{}, fmt.Errorf("%w: [%d:%d] of %d", ErrIndexOutOfBounds, i, j, v.length)
	}
	if i == j {
		return View{}, nil
	}
	return View{blk: v.blk, start: v.start + i, length: j - i, data: v.data[i:j:j]}, nil
}

// SplitAt splits the view at view-relative offset i.
func (v View) SplitAt(i int) (View, View, error) {
	left, err := v.Slice(0, i)
	if err != nil {
		return View{}, View{}, err
	}
	right, err := v.Slice(i, v.length)
	if err != nil {
		return View{}, View{}, err
	}
	return left, right, nil
}

// Retain registers a new live reference to the view's block.
func (v View) Retain() {
	if v.blk != nil {
		v.blk.retain()
	}
}

// Release drops a live reference to the view's block. Releasing the last view
// of the last block of a mapping unmaps the file.
func (v View) Release() {
	if v.blk != nil {
		v.blk.release()
	}
}
