package buffer

import (
	"context"
	"fmt"

	"github.com/guiguan/caster"
	"github.com/npillmayer/rope"
	"github.com/npillmayer/rope/textfile"
)

// ChangeKind tells what happened to a buffer.
type ChangeKind uint8

// Kinds of changes
const (
	Edited ChangeKind = iota
	Undone
	Redone
)

func (k ChangeKind) String() string {
	switch k {
	case Edited:
		return "edited"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	}
	return "unknown"
}

// Change is the notification sent to subscribers after the current revision
// of a buffer has changed. Index is the new current revision index.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Buffer holds a history of rope revisions.
//
// A buffer owns its revisions: it releases them when they are dropped from the
// history, and all of them on Close. Ropes returned by Current are borrowed and
// must be cloned by clients who want to keep them beyond the next edit.
type Buffer struct {
	revisions    []*rope.Rope
	current      int
	maxRevisions int // 0 = unlimited
	cast         *caster.Caster
	closed       bool
}

// New creates a buffer with r as its initial revision. The buffer takes over
// ownership of r. If r is nil, the buffer starts with an empty rope.
func New(r *rope.Rope) *Buffer {
	if r == nil {
		r = rope.Empty()
	}
	return &Buffer{
		revisions: []*rope.Rope{r},
		cast:      caster.New(nil),
	}
}

// Open maps a file into memory and creates a buffer for it. Block sizes and
// the revision limit are taken from the global configuration.
func Open(path string) (*Buffer, error) {
	cfg := rope.GlobalConfig()
	r, err := textfile.LoadWithConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	b := New(r)
	b.SetMaxRevisions(cfg.MaxRevisions)
	tracer().Infof("opened buffer for %s", path)
	return b, nil
}

// Current returns the current revision. It is nil for a closed buffer.
func (b *Buffer) Current() *rope.Rope {
	if b.closed {
		return nil
	}
	return b.revisions[b.current]
}

// Index returns the index of the current revision.
func (b *Buffer) Index() int {
	return b.current
}

// Revisions returns the number of revisions in the history.
func (b *Buffer) Revisions() int {
	return len(b.revisions)
}

// MaxRevisions returns the revision limit, 0 meaning unlimited.
func (b *Buffer) MaxRevisions() int {
	return b.maxRevisions
}

// SetMaxRevisions limits the length of the history. If there are more
// revisions than n, the oldest ones are released. Values <= 0 remove the
// limit.
func (b *Buffer) SetMaxRevisions(n int) {
	b.maxRevisions = max(n, 0)
	b.trim()
}

// Edit makes r the current revision. Revisions after the current one are
// released, as they can no longer be redone. The buffer takes over ownership
// of r.
func (b *Buffer) Edit(r *rope.Rope) error {
	if b.closed {
		return ErrClosed
	}
	if r == nil || r.IsReleased() {
		return fmt.Errorf("%w: edit with invalid rope", rope.ErrIllegalArguments)
	}
	for _, owned := range b.revisions {
		if owned == r {
			return fmt.Errorf("%w: rope is already a revision of this buffer", rope.ErrIllegalArguments)
		}
	}
	for _, future := range b.revisions[b.current+1:] {
		future.Release()
	}
	clear(b.revisions[b.current+1:])
	b.revisions = append(b.revisions[:b.current+1], r)
	b.current++
	b.trim()
	tracer().Debugf("buffer: revision %d of %d", b.current, len(b.revisions))
	b.notify(Edited)
	return nil
}

// InsertAt inserts text at byte position pos of the current revision and
// makes the result the new current revision. On error, the buffer is
// unchanged.
func (b *Buffer) InsertAt(pos uint64, text []byte) error {
	if b.closed {
		return ErrClosed
	}
	r, err := b.Current().InsertAt(pos, text)
	if err != nil {
		return err
	}
	return b.Edit(r)
}

// DeleteAt removes n bytes at byte position pos of the current revision and
// makes the result the new current revision. On error, the buffer is
// unchanged.
func (b *Buffer) DeleteAt(pos, n uint64) error {
	if b.closed {
		return ErrClosed
	}
	r, err := b.Current().DeleteAt(pos, n)
	if err != nil {
		return err
	}
	return b.Edit(r)
}

// Undo steps back to the previous revision.
func (b *Buffer) Undo() error {
	if b.closed {
		return ErrClosed
	}
	if b.current == 0 {
		return ErrAtOldest
	}
	b.current--
	b.notify(Undone)
	return nil
}

// Redo steps forward to the next revision.
func (b *Buffer) Redo() error {
	if b.closed {
		return ErrClosed
	}
	if b.current == len(b.revisions)-1 {
		return ErrAtNewest
	}
	b.current++
	b.notify(Redone)
	return nil
}

// Subscribe returns a channel of Change notifications. The subscription ends
// when ctx is done or the buffer is closed; the channel is closed then.
// capacity is the number of notifications buffered for a slow subscriber.
// Notifications a subscriber has no room for are dropped; edits never wait
// for subscribers.
func (b *Buffer) Subscribe(ctx context.Context, capacity uint) (<-chan Change, error) {
	if b.closed {
		return nil, ErrClosed
	}
	msgs, ok := b.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	changes := make(chan Change, capacity)
	go func() {
		defer close(changes)
		for msg := range msgs {
			c, ok := msg.(Change)
			if !ok {
				continue
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			select {
			case changes <- c:
			default: // subscriber lagging
			}
		}
	}()
	return changes, nil
}

// Close releases all revisions and ends all subscriptions. Closing a buffer
// twice is a no-op.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	for _, r := range b.revisions {
		r.Release()
	}
	b.revisions = nil
	b.current = 0
	b.cast.Close()
	tracer().Debugf("buffer closed")
	return nil
}

// trim releases the oldest revisions exceeding the revision limit. The
// current revision is never dropped.
func (b *Buffer) trim() {
	if b.maxRevisions == 0 {
		return
	}
	drop := min(len(b.revisions)-b.maxRevisions, b.current)
	if drop <= 0 {
		return
	}
	for _, r := range b.revisions[:drop] {
		r.Release()
	}
	n := copy(b.revisions, b.revisions[drop:])
	clear(b.revisions[n:])
	b.revisions = b.revisions[:n]
	b.current -= drop
	tracer().Debugf("buffer: dropped %d old revisions", drop)
}

func (b *Buffer) notify(kind ChangeKind) {
	b.cast.TryPub(Change{Kind: kind, Index: b.current})
}
