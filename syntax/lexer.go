package syntax

import (
	"bufio"
	"strings"
	"unicode"

	"nanoc/report"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source reader.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token.  Lexical errors are raised as compile errors.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: l.hereSpan()}
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"*":  TOK_STAR,
	"%":  TOK_MOD,
	"+=": TOK_PLUSASSIGN,
	"++": TOK_INC,
	"--": TOK_DEC,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=": TOK_ASSIGN,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	",": TOK_COMMA,
	";": TOK_SEMI,
	":": TOK_COLON,
}

// lexPunctOrOper lexes a punctuation or operator symbol.  The division
// operator is handled with the comment logic.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	l.eat()

	// `&` and `|` only exist doubled; they are not prefixes of any
	// single-rune pattern, so they are handled before the greedy loop.
	if first := l.tokBuff.String(); first == "&" || first == "|" {
		if l.peek() != rune(first[0]) {
			panic(report.Raise(report.ErrLex, l.getSpan(), "unexpected character `%s`", first))
		}

		l.eat()
		return l.makeToken(symbolPatterns[l.tokBuff.String()])
	}

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		panic(report.Raise(report.ErrLex, l.getSpan(), "unexpected character `%s`", l.tokBuff.String()))
	}

	for {
		c := l.peek()
		if c == -1 {
			break
		}

		if nextKind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			kind = nextKind
			l.eat()
		} else {
			break
		}
	}

	return l.makeToken(kind)
}

// lexCommentOrDiv handles the `/` rune: a line comment, a block comment, or
// the division operator.  It returns nil if a comment was skipped.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.eat()

	switch l.peek() {
	case '/':
		for c := l.peek(); c != -1 && c != '\n'; c = l.peek() {
			l.skip()
		}

		l.tokBuff.Reset()
		return nil
	case '*':
		l.skip()

		for {
			c := l.peek()
			if c == -1 {
				panic(report.Raise(report.ErrLex, l.getSpan(), "unterminated block comment"))
			}

			l.skip()
			if c == '*' && l.peek() == '/' {
				l.skip()
				break
			}
		}

		l.tokBuff.Reset()
		return nil
	default:
		return l.makeToken(TOK_DIV)
	}
}

// lexStringLit lexes a standard string literal.  String literals may not
// contain newlines.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.skip()

	for {
		c := l.peek()

		switch c {
		case -1, '\n':
			panic(report.Raise(report.ErrLex, l.getSpan(), "unterminated string literal"))
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT)
		case '\\':
			l.skip()
			l.lexEscapeSeq()
		default:
			l.eat()
		}
	}
}

// lexEscapeSeq lexes the rune following a backslash in a string literal and
// writes the escaped rune into the token buffer.
func (l *Lexer) lexEscapeSeq() {
	c := l.peek()

	switch c {
	case 'n':
		l.tokBuff.WriteRune('\n')
	case 't':
		l.tokBuff.WriteRune('\t')
	case 'r':
		l.tokBuff.WriteRune('\r')
	case '0':
		l.tokBuff.WriteRune(0)
	case '\\', '"':
		l.tokBuff.WriteRune(c)
	default:
		panic(report.Raise(report.ErrLex, l.getSpan(), "unknown escape sequence"))
	}

	l.skip()
}

// lexNumericLit lexes an integer or floating-point literal.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	if l.peek() == '.' {
		l.eat()

		if !isDecimalDigit(l.peek()) {
			panic(report.Raise(report.ErrLex, l.getSpan(), "expected digit after decimal point"))
		}

		for c := l.peek(); isDecimalDigit(c); c = l.peek() {
			l.eat()
		}
	}

	return l.makeToken(TOK_NUMLIT)
}

// lexIdentOrKeyword lexes an identifier or keyword.  Identifiers matching a
// reserved temporary-name prefix are rejected so that names synthesized by
// the normalization passes can never collide with user identifiers.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isIdentChar(c); c = l.peek() {
		l.eat()
	}

	value := l.tokBuff.String()

	if kind, ok := keywordPatterns[value]; ok {
		return l.makeToken(kind)
	}

	if isReservedTempName(value) {
		panic(report.Raise(report.ErrLex, l.getSpan(), "identifier `%s` uses a reserved name prefix", value))
	}

	return l.makeToken(TOK_IDENT)
}

// isReservedTempName reports whether a name matches one of the temporary-name
// patterns reserved for the compiler: an underscore, a lowercase `t`, `s`, or
// `k`, and one or more digits.
func isReservedTempName(name string) bool {
	if len(name) < 3 || name[0] != '_' {
		return false
	}

	switch name[1] {
	case 't', 's', 'k':
	default:
		return false
	}

	for i := 2; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// makeToken produces a token of the given kind from the lexer's token buffer
// and resets the buffer.
func (l *Lexer) makeToken(kind int) *Token {
	tok := &Token{Kind: kind, Value: l.tokBuff.String(), Span: l.getSpan()}
	l.tokBuff.Reset()

	return tok
}

// getSpan returns the span from the lexer's mark to its current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// hereSpan returns a zero-width span at the lexer's current position.
func (l *Lexer) hereSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.line,
		StartCol:  l.col,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// mark marks the current position as the start of a token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// peek returns the rune at the lexer's current position without consuming it.
// It returns -1 at the end of input.
func (l *Lexer) peek() rune {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return -1
	}

	l.file.UnreadRune()
	return c
}

// eat consumes the current rune and writes it into the token buffer.
func (l *Lexer) eat() {
	c := l.read()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}
}

// skip consumes the current rune without recording it.
func (l *Lexer) skip() {
	l.read()
}

// read consumes and returns the current rune, updating the lexer's position.
func (l *Lexer) read() rune {
	c, _, err := l.file.ReadRune()
	if err != nil {
		return -1
	}

	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return c
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}
