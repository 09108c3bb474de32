package block

import "errors"

var (
	// ErrMapping signals that a file could not be memory mapped.
	ErrMapping = errors.New("block: cannot map file")
	// ErrInvalidSize signals a non-positive block or chunk size.
	ErrInvalidSize = errors.New("block: invalid size")
	// ErrNotAppendable signals an append to a mapped block.
	ErrNotAppendable = errors.New("block: block is not appendable")
	// ErrIndexOutOfBounds signals invalid offsets when narrowing a view.
	ErrIndexOutOfBounds = errors.New("block: index out of bounds")
)
