// sexp.go — the lowered S-expression value and its canonical stringifier.
package kixpr

import (
	"strconv"
	"strings"
)

// SexpKind discriminates the four S-expression variants.
type SexpKind int

const (
	SexpList SexpKind = iota
	SexpName
	SexpString
	SexpNumber
)

// Sexp is the uniform tree a parse lowers to: a list of S-expressions or a
// name/string/number leaf. Leaves carry the span of the tokens they came
// from; synthesised call names span from their first to their last
// component. Sexp values outlive the parse and are returned to the caller.
type Sexp struct {
	Kind   SexpKind
	Text   string  // SexpName, SexpString
	Number float64 // SexpNumber
	Span   Span    // leaves only; lists derive extent from their children
	List   []*Sexp // SexpList
}

// String renders the canonical text form: lists as space-separated children
// in parentheses, numbers in the host's shortest notation, strings quoted
// and escaped, names verbatim.
func (s *Sexp) String() string {
	var sb strings.Builder
	s.appendToBuilder(&sb)
	return sb.String()
}

func (s *Sexp) appendToBuilder(sb *strings.Builder) {
	switch s.Kind {
	case SexpList:
		sb.WriteByte('(')
		for i, child := range s.List {
			if i > 0 {
				sb.WriteByte(' ')
			}
			child.appendToBuilder(sb)
		}
		sb.WriteByte(')')
	case SexpName:
		sb.WriteString(s.Text)
	case SexpString:
		sb.WriteString(quoteString(s.Text))
	case SexpNumber:
		sb.WriteString(formatNumber(s.Number))
	}
}

// Stringify renders sexp as canonical text. It is the oracle the test suite
// compares against.
func Stringify(sexp *Sexp) string { return sexp.String() }

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
