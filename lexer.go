// lexer.go
package kixpr

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Identifiers, operators & literals
	ID
	OP
	STRING
	NUMBER

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LCURLY  // "{"
	RCURLY  // "}"
	LSQUARE // "["
	RSQUARE // "]"
	COLON   // ":"
	PERIOD  // "."
	COMMA   // ","
)

// String renders the kind the way diagnostics name it.
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case ID:
		return "identifier"
	case OP:
		return "operator"
	case STRING:
		return "string literal"
	case NUMBER:
		return "number literal"
	case LROUND:
		return "'('"
	case RROUND:
		return "')'"
	case LCURLY:
		return "'{'"
	case RCURLY:
		return "'}'"
	case LSQUARE:
		return "'['"
	case RSQUARE:
		return "']'"
	case COLON:
		return "':'"
	case PERIOD:
		return "'.'"
	case COMMA:
		return "','"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with its source span.
type Token struct {
	Type TokenType
	Text string  // identifier/operator text; decoded value for STRING
	Num  float64 // value for NUMBER
	Span Span
}

// punctuation maps the nine reserved characters to their token types. These
// characters terminate operator runs and can never appear inside one.
var punctuation = map[rune]TokenType{
	'(': LROUND,
	')': RROUND,
	'{': LCURLY,
	'}': RCURLY,
	'[': LSQUARE,
	']': RSQUARE,
	':': COLON,
	'.': PERIOD,
	',': COMMA,
}

var punctuationGlyphs = map[TokenType]string{
	LROUND:  "(",
	RROUND:  ")",
	LCURLY:  "{",
	RCURLY:  "}",
	LSQUARE: "[",
	RSQUARE: "]",
	COLON:   ":",
	PERIOD:  ".",
	COMMA:   ",",
}

// String renders the token in its canonical source form. Literals render
// through the same escaping/formatting as the S-expression stringifier, so
// re-lexing a space-joined token rendering reproduces the original kinds and
// payloads. EOF renders empty.
func (t Token) String() string {
	switch t.Type {
	case ID, OP:
		return t.Text
	case STRING:
		return quoteString(t.Text)
	case NUMBER:
		return formatNumber(t.Num)
	case EOF:
		return ""
	}
	return punctuationGlyphs[t.Type]
}

// ----- errors -----

// LexErrorKind enumerates the lexical failure categories.
type LexErrorKind int

const (
	// UnexpectedCharacter is part of the historical error surface; with
	// operator tokens absorbing every non-whitespace, non-punctuation run
	// the scanner no longer produces it.
	UnexpectedCharacter LexErrorKind = iota
	InvalidEscapeSequence
	UnterminatedStringLiteral
	InvalidNumberFormatMultipleDecimalPoints
	FailedToParseNumber
)

// LexError is a fatal lexical diagnostic. There is no recovery: the first
// failure aborts the current lex.
type LexError struct {
	Kind LexErrorKind
	Pos  Position
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func (l *Lexer) err(kind LexErrorKind, msg string) error {
	return &LexError{Kind: kind, Pos: l.pos, Msg: msg}
}

// ----- lexer -----

// Lexer scans a source string into tokens, one code point of look-ahead on
// the input side and one buffered token of look-ahead on the output side.
type Lexer struct {
	src string
	off int      // byte offset of the next code point
	pos Position // position of the next code point

	peeked bool // look-ahead slot occupied
	tok    Token
	tokErr error
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, pos: Position{Line: 1, Column: 1}}
}

// NextToken returns the next token, draining the look-ahead slot if a peek
// filled it. At end of input it returns an EOF token with an empty span.
func (l *Lexer) NextToken() (Token, error) {
	if l.peeked {
		l.peeked = false
		return l.tok, l.tokErr
	}
	return l.scanToken()
}

// PeekToken returns what NextToken would, without consuming it. Repeated
// peeks are idempotent until the next NextToken call.
func (l *Lexer) PeekToken() (Token, error) {
	if !l.peeked {
		l.tok, l.tokErr = l.scanToken()
		l.peeked = true
	}
	return l.tok, l.tokErr
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peekRune() (rune, bool) {
	if l.off >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r, true
}

func (l *Lexer) advance() (rune, bool) {
	if l.off >= len(l.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Index++
	return r, true
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isOperatorRune(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	_, reserved := punctuation[r]
	return !reserved
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	start := l.pos

	r, ok := l.peekRune()
	if !ok {
		// The sentinel is zero-width; every source-backed token has a
		// non-empty span.
		return Token{Type: EOF, Span: Span{Start: start, End: start}}, nil
	}

	if tt, isPunct := punctuation[r]; isPunct {
		l.advance()
		return Token{Type: tt, Span: Span{Start: start, End: l.pos}}, nil
	}

	switch {
	case r == '"':
		return l.scanString(start)
	case isDigit(r):
		return l.scanNumber(start)
	case isIdentRune(r):
		return l.scanIdentifier(start), nil
	default:
		// Everything else starts an operator run.
		return l.scanOperator(start), nil
	}
}

// scanIdentifier consumes the maximal run of alphanumeric-or-underscore
// code points. The caller has checked the first one.
func (l *Lexer) scanIdentifier(start Position) Token {
	from := l.off
	for {
		r, ok := l.peekRune()
		if !ok || !isIdentRune(r) {
			break
		}
		l.advance()
	}
	return Token{
		Type: ID,
		Text: l.src[from:l.off],
		Span: Span{Start: start, End: l.pos},
	}
}

// scanOperator consumes the maximal run of code points that are neither
// whitespace nor reserved punctuation. The run is greedy: adjacent operators
// not separated by whitespace merge into one token, so "a+b" lexes as the
// identifier "a" followed by the operator "+b". This is the defined
// behaviour, not an accident.
func (l *Lexer) scanOperator(start Position) Token {
	from := l.off
	for {
		r, ok := l.peekRune()
		if !ok || !isOperatorRune(r) {
			break
		}
		l.advance()
	}
	return Token{
		Type: OP,
		Text: l.src[from:l.off],
		Span: Span{Start: start, End: l.pos},
	}
}

// scanString decodes a double-quoted literal. Escapes are exactly \n, \t,
// \\ and \"; anything else after a backslash is an error.
func (l *Lexer) scanString(start Position) (Token, error) {
	l.advance() // opening quote

	var out []rune
	escaped := false
	for {
		r, ok := l.advance()
		if !ok {
			return Token{}, l.err(UnterminatedStringLiteral, "string literal was not terminated")
		}
		if escaped {
			switch r {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				return Token{}, l.err(InvalidEscapeSequence, fmt.Sprintf("invalid escape sequence: \\%c", r))
			}
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '"':
			return Token{
				Type: STRING,
				Text: string(out),
				Span: Span{Start: start, End: l.pos},
			}, nil
		default:
			out = append(out, r)
		}
	}
}

// scanNumber consumes a maximal run of digits with at most one decimal
// point. A second '.' adjacent to the run is an error rather than a PERIOD
// token. A trailing '.' is consumed into the literal; strconv accepts it.
func (l *Lexer) scanNumber(start Position) (Token, error) {
	from := l.off
	sawDot := false
loop:
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		switch {
		case isDigit(r):
			l.advance()
		case r == '.' && !sawDot:
			sawDot = true
			l.advance()
		case r == '.':
			return Token{}, l.err(InvalidNumberFormatMultipleDecimalPoints, "number literal has multiple decimal points")
		default:
			break loop
		}
	}

	text := l.src[from:l.off]
	v, convErr := strconv.ParseFloat(text, 64)
	if convErr != nil {
		return Token{}, l.err(FailedToParseNumber, fmt.Sprintf("failed to parse number %q", text))
	}
	return Token{
		Type: NUMBER,
		Num:  v,
		Span: Span{Start: start, End: l.pos},
	}, nil
}
