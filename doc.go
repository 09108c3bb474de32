/*
Package rope implements the text storage of an editor pane as a persistent,
immutable rope.

Ropes

A rope (sometimes called a cord) organizes fragments of immutable text in a
tree-structure. Editing a rope never changes it; insertions and deletions
return a new rope which shares all untouched subtrees with the original. This
makes keeping a history of revisions for undo/redo cheap: every revision is a
complete rope, and consecutive revisions differ only along the edited paths.

From Wikipedia:
In computer programming, a rope, or cord, is a data structure composed of
smaller strings that is used to efficiently store and manipulate a very long string.
For example, a text editing program may use a rope to represent the text being edited,
so that operations such as insertion, deletion, and random access can be
done efficiently. […] In summary, ropes are preferable when the data is large
and modified often.

Tree Structure

The tree is a binary, leaf-oriented red-black tree. Leaves carry a view onto
a storage block, branches carry two children, their aggregated byte length and
a color. Leaves are black. The usual red-black invariants hold:

  * No red branch has a red child.
  * Every path from the root to a leaf passes through the same number of black nodes.

Nodes do not carry a reference to their parent. Parent links would prevent
sharing subtrees between revisions, as a subtree may well have many logical
parents. Operations which need to walk upwards record the path from the root
as a LeafPath.

Text is stored in blocks (see package block). Text loaded from a file lives in
read-only memory mapped blocks, text entered by the user is appended to
grow-only appendable blocks. Nodes are reference counted; a mapping is
released as soon as no live rope references any of its blocks.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package rope

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with the module-wide key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}

// RopeError is an error type for the rope module
type RopeError string

func (e RopeError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever a position or a range exceeds the length
// of a rope.
const ErrOutOfRange = RopeError("rope: position out of range")

// EOS (end of sequence) is an alias for ErrOutOfRange.
const EOS = ErrOutOfRange

// ErrReleased is flagged for operations on a rope handle which has already
// been released.
const ErrReleased = RopeError("rope: use of released rope")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = RopeError("rope: illegal arguments")

// ErrInvalidConfig is flagged for invalid configuration values.
const ErrInvalidConfig = RopeError("rope: invalid configuration")

// ErrUnbalanced is flagged by Check for trees violating the red-black
// invariants.
const ErrUnbalanced = RopeError("rope: tree invariants violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
