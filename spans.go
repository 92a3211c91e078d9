// spans.go — source positions and spans.
//
// Positions count code points, not bytes: the lexer advances them one rune
// at a time, so multi-byte characters occupy a single column/index step.
// Spans are half-open ranges [Start, End) annotated on every token and on
// every leaf of the lowered S-expression tree.
package kixpr

// Position locates a code point in the source text.
type Position struct {
	Line   int // 1-based; incremented on line feed
	Column int // 1-based; reset to 1 after a line feed
	Index  int // 0-based code-point offset into the source
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// Join returns the span covering both s and o: its start is the
// component-wise minimum of the two starts and its end the component-wise
// maximum of the two ends. On joins that cross a line boundary the resulting
// column can exceed the column of the true later position; Index is always
// exact, and span consumers order and compare by Index. Join is associative
// and commutative.
func (s Span) Join(o Span) Span {
	return Span{
		Start: minPosition(s.Start, o.Start),
		End:   maxPosition(s.End, o.End),
	}
}

// Contains reports whether o lies entirely within s, by code-point index.
func (s Span) Contains(o Span) bool {
	return s.Start.Index <= o.Start.Index && o.End.Index <= s.End.Index
}

func minPosition(a, b Position) Position {
	return Position{
		Line:   min(a.Line, b.Line),
		Column: min(a.Column, b.Column),
		Index:  min(a.Index, b.Index),
	}
}

func maxPosition(a, b Position) Position {
	return Position{
		Line:   max(a.Line, b.Line),
		Column: max(a.Column, b.Column),
		Index:  max(a.Index, b.Index),
	}
}
