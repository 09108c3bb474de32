/*
Package textfile provides API helpers to load text files as ropes.

Files are memory mapped read-only and cut into fixed-size blocks. Each block
becomes a leaf of a balanced rope; no file content is copied. The mapping
stays alive as long as any rope derived from the loaded one still references
one of its blocks.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with the module-wide key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
