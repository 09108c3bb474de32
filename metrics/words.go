package metrics

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/rope"
)

// WordsValue is the result of a word-materialization pass.
type WordsValue struct {
	Spans []Span
}

// WordCount returns the number of recognized words.
func (v WordsValue) WordCount() int {
	return len(v.Spans)
}

// WordsMetric is a materialized word metric. Words are maximal runs of
// non-space runes.
type WordsMetric struct{}

// Words creates a materialized word metric.
func Words() WordsMetric {
	return WordsMetric{}
}

// Apply scans [i,j) for words and returns word spans plus a materialized rope.
// The materialized rope is owned by the caller and has to be released.
//
// Materialization concatenates all recognized words in logical order and omits
// non-word separators.
func (WordsMetric) Apply(text *rope.Rope, i, j uint64) (WordsValue, *rope.Rope, error) {
	if text.IsReleased() {
		return WordsValue{}, nil, rope.ErrReleased
	}
	if i > text.Len() || j > text.Len() || j < i {
		return WordsValue{}, nil, rope.ErrOutOfRange
	}
	if i == j {
		return WordsValue{}, rope.Empty(), nil
	}
	content := make([]byte, j-i)
	if _, err := text.ReadAt(content, int64(i)); err != nil {
		return WordsValue{}, nil, err
	}
	value := WordsValue{
		Spans: findWordSpans(content, i),
	}
	b := rope.NewBuilder(rope.DefaultConfig())
	for _, span := range value.Spans {
		start := int(span.Pos - i)
		if err := b.Append(content[start : start+int(span.Len)]); err != nil {
			return WordsValue{}, nil, err
		}
	}
	tracer().Debugf("found %d words in [%d:%d]", len(value.Spans), i, j)
	return value, b.Rope(), nil
}

func findWordSpans(b []byte, base uint64) []Span {
	spans := make([]Span, 0, 8)
	for pos := 0; pos < len(b); {
		r, width := utf8.DecodeRune(b[pos:])
		if unicode.IsSpace(r) {
			pos += width
			continue
		}
		start := pos
		pos += width
		for pos < len(b) {
			r, width = utf8.DecodeRune(b[pos:])
			if unicode.IsSpace(r) {
				break
			}
			pos += width
		}
		spans = append(spans, Span{
			Pos: base + uint64(start),
			Len: uint64(pos - start),
		})
	}
	return spans
}
