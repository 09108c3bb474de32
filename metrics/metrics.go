package metrics

import (
	"fmt"

	"github.com/npillmayer/rope"
)

// Span is a byte-range descriptor inside a rope snapshot.
//
// Pos is the start byte offset, Len is the span length in bytes.
type Span struct {
	Pos uint64
	Len uint64
}

// CountingMetric is a type for metrics that count items in text. Possible
// items may be lines, delimiters, …
type CountingMetric interface {
	rope.Metric
	Count(rope.MetricValue) int
}

// Count applies a counting metric to the range [i, j) of a text.
func Count(text *rope.Rope, i, j uint64, metric CountingMetric) (int, error) {
	value, err := rope.ApplyMetric(text, i, j, metric)
	if err != nil {
		return -1, fmt.Errorf("metrics.Count could not be applied: %w", err)
	}
	return metric.Count(value), nil
}

// ---------------------------------------------------------------------------

// A ScanningMetric searches a text for items (such as delimiters) and
// returns their locations, relative to the start of the measured range.
type ScanningMetric interface {
	rope.Metric
	Locations(rope.MetricValue) []Span
}

// Find applies a scanning metric to the range [i, j) of a text. The spans
// returned are positions within the rope.
func Find(text *rope.Rope, i, j uint64, metric ScanningMetric) ([]Span, error) {
	value, err := rope.ApplyMetric(text, i, j, metric)
	if err != nil {
		return nil, fmt.Errorf("metrics.Find could not be applied: %w", err)
	}
	spans := metric.Locations(value)
	for k := range spans {
		spans[k].Pos += i
	}
	return spans, nil
}
