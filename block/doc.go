/*
Package block provides the byte storage underneath rope leaves.

Two kinds of blocks exist. Mapped blocks are read-only windows onto a memory
mapped file; all blocks of one file share a single Mapping, which is unmapped
once neither the opener nor any live block references it. Appendable blocks
are grow-only byte buffers used for edited text: bytes are only ever appended
behind the current length, so a region handed out as a View never changes.

Leaves reference blocks through a View (block, start, length). Views are
values; their reference counting is driven by the rope layer, which calls
Retain/Release when a leaf becomes reachable or unreachable.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package block

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with the module-wide key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
