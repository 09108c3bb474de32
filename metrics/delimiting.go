package metrics

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/rope"
)

// --- Line count metric -----------------------------------------------------

// LineCount is a metric that counts the lines of a text, delimited by newline
// characters. Multiple consecutive newlines will be counted as multiple empty
// lines. A non-empty text without any newline has one line, an empty range has
// none.
func LineCount() CountingMetric {
	return lineCount{delimiterMetric{sep: []byte{'\n'}}}
}

type lineCount struct {
	delimiterMetric
}

// Count returns the number of lines, i.e. the number of newlines plus one.
func (lineCount) Count(v rope.MetricValue) int {
	if isnull(v) {
		return 0
	}
	return len(v.(*delimiterValue).parts) + 1
}

// --- Delimiter Metric ------------------------------------------------------

// DelimiterMetric both counts and locates delimiters.
type DelimiterMetric interface {
	CountingMetric
	ScanningMetric
}

// Delimiter creates a metric which finds all occurrences of sep in a text.
// Occurrences do not overlap; they are searched from left to right.
func Delimiter(sep string) (DelimiterMetric, error) {
	if sep == "" {
		tracer().Errorf("delimiter metric: empty delimiter")
		return nil, fmt.Errorf("%w: empty delimiter", rope.ErrIllegalArguments)
	}
	return delimiterMetric{sep: []byte(sep)}, nil
}

type delimiterMetric struct {
	sep []byte
}

// delimiterValue holds the delimiter spans of a portion of text. head and
// tail are the first and last len(sep)-1 bytes of the portion, which are
// needed to find a delimiter straddling the boundary of two portions.
type delimiterValue struct {
	length int
	parts  []Span // relative to the start of the portion
	head   []byte
	tail   []byte
}

func (v *delimiterValue) Len() int {
	return v.length
}

func (v *delimiterValue) String() string {
	return fmt.Sprintf("value{ length=%d, |P|=%d }", v.length, len(v.parts))
}

// Apply finds the delimiters within a text fragment.
func (dm delimiterMetric) Apply(frag []byte) rope.MetricValue {
	k := min(len(dm.sep)-1, len(frag))
	v := &delimiterValue{
		length: len(frag),
		parts:  dm.delimit(frag),
		head:   bytes.Clone(frag[:k]),
		tail:   bytes.Clone(frag[len(frag)-k:]),
	}
	return v
}

// Combine merges the values of two adjacent portions of text. A delimiter
// may start in the left portion and end in the right one; it is found by
// re-scanning the bytes around the boundary.
func (dm delimiterMetric) Combine(left, right rope.MetricValue) rope.MetricValue {
	l, ok := left.(*delimiterValue)
	r, ok2 := right.(*delimiterValue)
	if !ok || !ok2 {
		tracer().Errorf("metric calculation: type of values is %T/%T", left, right)
		panic("rope.Metric combine: type inconsistency in metric calculation")
	}
	v := &delimiterValue{
		length: l.length + r.length,
		parts:  make([]Span, 0, len(l.parts)+len(r.parts)+1),
	}
	v.parts = append(v.parts, l.parts...)
	if len(dm.sep) > 1 {
		v.parts = append(v.parts, dm.straddling(l, r)...)
	}
	for _, p := range r.parts {
		v.parts = append(v.parts, Span{Pos: p.Pos + uint64(l.length), Len: p.Len})
	}
	k := len(dm.sep) - 1
	v.head = l.head
	if l.length < k {
		v.head = clip(concat(l.head, r.head), k, false)
	}
	v.tail = r.tail
	if r.length < k {
		v.tail = clip(concat(l.tail, r.tail), k, true)
	}
	return v
}

// straddling returns delimiters beginning in l and ending in r. Delimiters
// overlapping ones already found on either side are skipped.
func (dm delimiterMetric) straddling(l, r *delimiterValue) []Span {
	window := concat(l.tail, r.head)
	boundary := len(l.tail)
	base := uint64(l.length - len(l.tail))
	lend := uint64(0) // end of the last delimiter in l
	if n := len(l.parts); n > 0 {
		lend = l.parts[n-1].Pos + l.parts[n-1].Len
	}
	rstart := uint64(r.length) // start of the first delimiter in r
	if len(r.parts) > 0 {
		rstart = r.parts[0].Pos
	}
	var spans []Span
	for _, p := range dm.delimit(window) {
		from, to := int(p.Pos), int(p.Pos+p.Len)
		if from >= boundary || to <= boundary {
			continue
		}
		if base+p.Pos < lend || uint64(to-boundary) > rstart {
			continue
		}
		spans = append(spans, Span{Pos: base + p.Pos, Len: p.Len})
	}
	return spans
}

// Count returns the number of delimiters.
func (dm delimiterMetric) Count(v rope.MetricValue) int {
	if isnull(v) {
		return 0
	}
	return len(v.(*delimiterValue).parts)
}

// Locations returns the spans of all delimiters.
func (dm delimiterMetric) Locations(v rope.MetricValue) []Span {
	if isnull(v) {
		return nil
	}
	return append([]Span(nil), v.(*delimiterValue).parts...)
}

func (dm delimiterMetric) delimit(frag []byte) []Span {
	var parts []Span
	for pos := 0; pos+len(dm.sep) <= len(frag); {
		k := bytes.Index(frag[pos:], dm.sep)
		if k < 0 {
			break
		}
		parts = append(parts, Span{Pos: uint64(pos + k), Len: uint64(len(dm.sep))})
		pos += k + len(dm.sep)
	}
	return parts
}

func concat(a, b []byte) []byte {
	c := make([]byte, 0, len(a)+len(b))
	return append(append(c, a...), b...)
}

// clip returns the first (or last, if fromEnd) k bytes of p.
func clip(p []byte, k int, fromEnd bool) []byte {
	if len(p) <= k {
		return p
	}
	if fromEnd {
		return p[len(p)-k:]
	}
	return p[:k]
}

func isnull(v rope.MetricValue) bool {
	return v == nil || v.Len() == 0
}
