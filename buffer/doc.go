/*
Package buffer implements an editing buffer on top of persistent ropes.

A buffer is a list of rope revisions together with the index of the current
one. Every edit derives a new rope from the current revision and appends it,
dropping all revisions which have been undone before. As ropes share unchanged
subtrees, keeping many revisions is cheap.

Clients interested in changes, such as a renderer or a syntax highlighter,
may subscribe to change notifications. Notifications are delivered
asynchronously; mutation of a buffer is single-threaded.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package buffer

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with the module-wide key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}

var (
	// ErrAtOldest is returned by Undo for a buffer at its first revision.
	ErrAtOldest = errors.New("buffer: already at oldest revision")
	// ErrAtNewest is returned by Redo for a buffer at its latest revision.
	ErrAtNewest = errors.New("buffer: already at newest revision")
	// ErrClosed is returned for operations on a closed buffer.
	ErrClosed = errors.New("buffer: buffer is closed")
)
