/*
Package metrics provides some pre-manufactured metrics on texts.

Metrics are calculated on the fragments of a rope and combined upwards
the tree (see rope.Metric). Clients use Count or Find to apply them to a
range of a rope. Positions are byte offsets.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with the module-wide key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
