// parser.go — recursive-descent parser for the kixpr surface syntax.
//
// OVERVIEW
// --------
// This module consumes the token stream produced by the lexer (see lexer.go)
// through a one-token look-ahead interface and builds a concrete syntax tree
// reflecting the language's precedence strata, loosest to tightest:
//
//	List              e1, e2, e3         comma-separated elements
//	RightAssocChain   a : b : c          right-associative, a : (b : c)
//	LeftAssocChain    a . b . c          left-associative, (a . b) . c
//	OperatorMixfixCall x <= y < z        operators and calls juxtaposed
//	AlphanumericCall  f x y              atom juxtaposition
//	AtomicExpr        name | "s" | 1.5 | ( ... ) | { ... } | [ ... ]
//
// Each parsing procedure calls only the stratum immediately below it, plus
// itself for the associative tail, so the descent needs no backtracking and
// no explicit stack. The three bracket shapes all produce the same
// parenthesised-list node; the opening and closing tokens are retained on
// the node so spans can be reconstructed, and the closing kind demanded is
// determined strictly by the opening kind.
//
// The concrete tree is an intermediate: lowering (lower.go) turns it into
// the S-expression form and the tree is dropped. It must exist, because the
// '.' and ':' chain lowerings splice into the fully lowered form of the
// opposite operand.
//
// Every error is fatal to the current parse. There is no panic mode, no
// skip-to-synchronising-token, no partial tree: the first failure is
// returned as a typed diagnostic, and lexer errors cascade through as-is.
package kixpr

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses a complete source string and returns the lowered S-expression
// of its top-level list. Empty input yields an empty list. On failure it
// returns a *LexError or *ParseError pinpointing the first offending
// position.
func Parse(src string) (*Sexp, error) {
	p := &parser{lex: NewLexer(src)}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	list := &listNode{}
	if tok.Type != EOF {
		list, err = p.parseList()
		if err != nil {
			return nil, err
		}
		end, err := p.next()
		if err != nil {
			return nil, err
		}
		if end.Type != EOF {
			return nil, unexpectedToken(end, EOF)
		}
	}
	return lowerList(list), nil
}

// ParseErrorKind discriminates the syntactic failure categories.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnexpectedEOF
)

// ParseError is a fatal syntactic diagnostic. Expected is meaningful only
// when HasExpected is set; the grammar records it where it had a fixed
// expectation, such as the closing bracket matching an opener.
type ParseError struct {
	Kind        ParseErrorKind
	Token       Token // the offending token, for UnexpectedToken
	Expected    TokenType
	HasExpected bool
	Pos         Position // start of the offending token, or end of input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.message())
}

func (e *ParseError) message() string {
	msg := ""
	if e.Kind == UnexpectedEOF {
		msg = "unexpected end of input"
	} else {
		msg = fmt.Sprintf("unexpected token '%s'", e.Token.String())
	}
	if e.HasExpected {
		msg += fmt.Sprintf(", expected %s", e.Expected)
	}
	return msg
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

func unexpectedToken(tok Token, expected ...TokenType) *ParseError {
	e := &ParseError{Kind: UnexpectedToken, Token: tok, Pos: tok.Span.Start}
	if tok.Type == EOF {
		e.Kind = UnexpectedEOF
	}
	if len(expected) > 0 {
		e.Expected = expected[0]
		e.HasExpected = true
	}
	return e
}

// ─────────────────────────── concrete syntax tree ───────────────────────────
//
// One node type per stratum, built bottom-up during the single parse and
// destroyed after lowering.

type listNode struct {
	elements []*rightChainNode
}

// rightChainNode is `left : right` when right is non-nil, else just left.
type rightChainNode struct {
	left  *leftChainNode
	colon Token
	right *rightChainNode
}

// leftChainNode is a single call when term is non-nil, else `left . right`.
type leftChainNode struct {
	term  *mixfixNode
	left  *leftChainNode
	dot   Token
	right *mixfixNode
}

// mixfixNode is a non-empty run of components, each an operator token or an
// alphanumeric call.
type mixfixNode struct {
	components []mixfixComponent
}

type mixfixComponent struct {
	isOp bool
	op   Token // when isOp
	call *alphaCallNode
}

func (c mixfixComponent) span() Span {
	if c.isOp {
		return c.op.Span
	}
	return c.call.span()
}

func (n *mixfixNode) span() Span {
	first := n.components[0].span()
	last := n.components[len(n.components)-1].span()
	return first.Join(last)
}

type alphaCallNode struct {
	head atomicNode
	args []atomicNode
}

func (n *alphaCallNode) span() Span {
	s := n.head.span()
	if len(n.args) > 0 {
		s = s.Join(n.args[len(n.args)-1].span())
	}
	return s
}

type atomicNode interface {
	span() Span
}

type nameAtom struct{ tok Token }
type stringAtom struct{ tok Token }
type numberAtom struct{ tok Token }

// groupAtom keeps its open and close tokens so the node's span covers the
// brackets themselves.
type groupAtom struct {
	open  Token
	inner *listNode
	close Token
}

func (a nameAtom) span() Span   { return a.tok.Span }
func (a stringAtom) span() Span { return a.tok.Span }
func (a numberAtom) span() Span { return a.tok.Span }
func (a groupAtom) span() Span  { return a.open.Span.Join(a.close.Span) }

// ───────────────────────────────── parser ───────────────────────────────────

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, error) { return p.lex.PeekToken() }
func (p *parser) next() (Token, error) { return p.lex.NextToken() }

// closerFor maps an opening bracket to the closing kind it demands.
var closerFor = map[TokenType]TokenType{
	LROUND:  RROUND,
	LCURLY:  RCURLY,
	LSQUARE: RSQUARE,
}

// startsAtom reports whether a token of this kind can begin an atomic
// expression, and therefore an argument of an alphanumeric call.
func startsAtom(tt TokenType) bool {
	switch tt {
	case ID, STRING, NUMBER, LROUND, LCURLY, LSQUARE:
		return true
	}
	return false
}

// endsMixfix reports whether a token of this kind terminates the component
// run of an operator-mixfix call.
func endsMixfix(tt TokenType) bool {
	switch tt {
	case COMMA, PERIOD, COLON, RROUND, RCURLY, RSQUARE, EOF:
		return true
	}
	return false
}

// parseList parses one right-chain, then keeps consuming `,` separators.
// Empty lists are accepted only by the enclosing group parser, which checks
// for an immediate closing bracket before calling here.
func (p *parser) parseList() (*listNode, error) {
	list := &listNode{}
	for {
		element, err := p.parseRightChain()
		if err != nil {
			return nil, err
		}
		list.elements = append(list.elements, element)

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != COMMA {
			return list, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}
}

// parseRightChain is right-recursive, so `a : b : c` nests as a : (b : c).
func (p *parser) parseRightChain() (*rightChainNode, error) {
	left, err := p.parseLeftChain()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != COLON {
		return &rightChainNode{left: left}, nil
	}
	colon, err := p.next()
	if err != nil {
		return nil, err
	}
	right, err := p.parseRightChain()
	if err != nil {
		return nil, err
	}
	return &rightChainNode{left: left, colon: colon, right: right}, nil
}

// parseLeftChain folds iteratively, so `a . b . c` nests as (a . b) . c.
func (p *parser) parseLeftChain() (*leftChainNode, error) {
	term, err := p.parseMixfix()
	if err != nil {
		return nil, err
	}
	acc := &leftChainNode{term: term}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != PERIOD {
			return acc, nil
		}
		dot, err := p.next()
		if err != nil {
			return nil, err
		}
		right, err := p.parseMixfix()
		if err != nil {
			return nil, err
		}
		acc = &leftChainNode{left: acc, dot: dot, right: right}
	}
}

// parseMixfix greedily collects components until a separator, a closing
// bracket or end of input. The first component is parsed unconditionally,
// so a separator in head position surfaces as an atomic-expression error.
func (p *parser) parseMixfix() (*mixfixNode, error) {
	node := &mixfixNode{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if len(node.components) > 0 && endsMixfix(tok.Type) {
			return node, nil
		}
		if tok.Type == OP {
			op, err := p.next()
			if err != nil {
				return nil, err
			}
			node.components = append(node.components, mixfixComponent{isOp: true, op: op})
			continue
		}
		call, err := p.parseAlphaCall()
		if err != nil {
			return nil, err
		}
		node.components = append(node.components, mixfixComponent{call: call})
	}
}

// parseAlphaCall parses an atomic head and any juxtaposed atomic arguments.
func (p *parser) parseAlphaCall() (*alphaCallNode, error) {
	head, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}
	call := &alphaCallNode{head: head}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !startsAtom(tok.Type) {
			return call, nil
		}
		arg, err := p.parseAtomic()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
	}
}

func (p *parser) parseAtomic() (atomicNode, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case ID:
		return nameAtom{tok: tok}, nil
	case STRING:
		return stringAtom{tok: tok}, nil
	case NUMBER:
		return numberAtom{tok: tok}, nil
	case LROUND, LCURLY, LSQUARE:
		return p.parseGroup(tok)
	}
	return nil, unexpectedToken(tok)
}

// parseGroup parses the bracketed list following an opening token. The
// group is empty only when the matching closer follows immediately.
func (p *parser) parseGroup(open Token) (atomicNode, error) {
	want := closerFor[open.Type]

	inner := &listNode{}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != want {
		inner, err = p.parseList()
		if err != nil {
			return nil, err
		}
	}

	closing, err := p.next()
	if err != nil {
		return nil, err
	}
	if closing.Type != want {
		return nil, unexpectedToken(closing, want)
	}
	return groupAtom{open: open, inner: inner, close: closing}, nil
}
