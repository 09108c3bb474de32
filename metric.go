package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import "fmt"

// Metric is a metric to calculate on a rope. Sometimes it's helpful to find
// information about a (large) text by collecting metrics from fragments and
// assembling them. Ropes naturally break up texts into smaller fragments,
// letting us calculate metrics by applying them to (a subset of) fragments and
// propagating them upwards the nodes of the tree.
//
// An example of a (very simplistic) metric would be to count the number of
// bytes in a text. The total count is calculated by counting the bytes in every
// fragment and adding up intermediate sums while travelling upwards through the
// tree.
//
// Apply will be called for portions of text. Clients have no control over size
// or boundaries of the fragments; fragments are cut without regard to rune or
// line boundaries. Combine has to assemble the values of two adjacent portions
// of text into a value for the concatenated text. It must be associative.
type Metric interface {
	Apply(frag []byte) MetricValue
	Combine(leftSibling, rightSibling MetricValue) MetricValue
}

// MetricValue is a type returned by applying a metric to text fragments.
// Len is the summed up length of the fragments the value has been calculated
// for.
type MetricValue interface {
	Len() int
}

// ApplyMetric applies a metric calculation on a (section of a) text.
//
// i and j are text positions with Go slice semantics. If [i, j) does not
// specify a valid slice of the text, ErrOutOfRange will be returned. For an
// empty range the value is nil.
func ApplyMetric(r *Rope, i, j uint64, metric Metric) (MetricValue, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, ErrIllegalArguments
	}
	if j < i || j > r.root.length {
		return nil, fmt.Errorf("%w: metric range [%d:%d], length is %d", ErrOutOfRange, i, j, r.root.length)
	}
	if i == j {
		return nil, nil
	}
	return applyMetric(r.root, i, j, metric), nil
}

// applyMetric calculates the metric for [i, j) relative to n. Subtrees outside
// the range are not visited.
func applyMetric(n *node, i, j uint64, metric Metric) MetricValue {
	if n.isLeaf() {
		return metric.Apply(n.bytes()[i:j])
	}
	w := n.left.length
	var vl, vr MetricValue
	if i < w {
		vl = applyMetric(n.left, i, min(j, w), metric)
	}
	if j > w {
		vr = applyMetric(n.right, i-min(i, w), j-w, metric)
	}
	switch {
	case isnull(vl):
		return vr
	case isnull(vr):
		return vl
	}
	return metric.Combine(vl, vr)
}

func isnull(v MetricValue) bool {
	return v == nil || v.Len() == 0
}
