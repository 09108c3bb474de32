package rope

import (
	"unicode/utf8"
)

// CharCursor navigates a rope by UTF-8 rune positions.
//
// The cursor is bound to one rope snapshot. Movement is in rune steps, while
// addressing uses byte offsets, the coordinate space of all rope operations.
// Runes may straddle leaf boundaries; they are re-assembled from up to
// utf8.UTFMax bytes around the cursor.
type CharCursor struct {
	rope    *Rope
	byteOff uint64
}

// NewCharCursor creates a rune-aware cursor at byte position pos.
func (r *Rope) NewCharCursor(pos uint64) (*CharCursor, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if pos > r.Len() {
		return nil, ErrOutOfRange
	}
	return &CharCursor{rope: r, byteOff: pos}, nil
}

// ByteOffset returns the current cursor byte offset.
func (cc *CharCursor) ByteOffset() uint64 {
	if cc == nil {
		return 0
	}
	return cc.byteOff
}

// Seek moves the cursor to byte position pos.
func (cc *CharCursor) Seek(pos uint64) error {
	if cc == nil {
		return ErrIllegalArguments
	}
	if pos > cc.rope.Len() {
		return ErrOutOfRange
	}
	cc.byteOff = pos
	return nil
}

// Next returns the rune at the current cursor position and advances by one rune.
// Invalid UTF-8 is returned as utf8.RuneError and advances by one byte.
//
// If the cursor is at end-of-rope, ok is false.
func (cc *CharCursor) Next() (r rune, ok bool) {
	if cc == nil || cc.byteOff >= cc.rope.Len() {
		return 0, false
	}
	var buf [utf8.UTFMax]byte
	n, _ := cc.rope.ReadAt(buf[:], int64(cc.byteOff))
	if n == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRune(buf[:n])
	cc.byteOff += uint64(size)
	return r, true
}

// Prev returns the rune before the current cursor position and moves back by one rune.
//
// If the cursor is at start-of-rope, ok is false.
func (cc *CharCursor) Prev() (r rune, ok bool) {
	if cc == nil || cc.byteOff == 0 {
		return 0, false
	}
	start := cc.byteOff - min(cc.byteOff, utf8.UTFMax)
	var buf [utf8.UTFMax]byte
	n, _ := cc.rope.ReadAt(buf[:cc.byteOff-start], int64(start))
	if n == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(buf[:n])
	cc.byteOff -= uint64(size)
	return r, true
}

// NextRange is like Next, but returns the byte range [start, end) the rune
// occupies instead of advancing silently.
func (cc *CharCursor) NextRange() (r rune, start, end uint64, ok bool) {
	start = cc.ByteOffset()
	if r, ok = cc.Next(); !ok {
		return 0, start, start, false
	}
	return r, start, cc.byteOff, true
}

// PrevRange is like Prev, but returns the byte range [start, end) of the rune
// stepped over.
func (cc *CharCursor) PrevRange() (r rune, start, end uint64, ok bool) {
	end = cc.ByteOffset()
	if r, ok = cc.Prev(); !ok {
		return 0, end, end, false
	}
	return r, cc.byteOff, end, true
}
