// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// This module turns the package's lex/parse diagnostics into readable,
// Python-style error snippets with a caret pointing at the offending
// column:
//
//	PARSE ERROR at 1:3: unexpected end of input, expected ')'
//
//	   1 | (a
//	     |   ^
//
// The snippet shows up to one line of context before and after the error.
// Any error that is not a *LexError or *ParseError passes through
// unchanged, so the wrapper can sit on every exit path of a caller.
package kixpr

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of the provided source when err is one of this package's diagnostics, and
// err itself otherwise.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (typically a
// file path) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", caretSnippet(src, "LEXICAL ERROR", srcName, e.Pos, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", srcName, e.Pos, e.message()))
	default:
		return err
	}
}

// caretSnippet builds the header plus a numbered source excerpt with a
// caret under the 1-based column. Out-of-range coordinates are clamped so
// rendering never fails on short or empty sources.
func caretSnippet(src, header, name string, pos Position, msg string) string {
	lines := strings.Split(src, "\n")
	line, col := pos.Line, pos.Column
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
