package syntax

import (
	"bufio"
	"io"

	"nanoc/ast"
	"nanoc/report"
	"nanoc/types"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.  All parsing
// functions assume that they begin with the parser centered on the first
// token of their production and must consume all tokens (including the last)
// of their production, leaving the parser on the next token.  It is a
// recursive descent parser with conventional C-family precedence.

// Parser is the parser for a Nano source file.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the previous token the parser was positioned on.
	lookbehind *Token
}

// NewParser creates a new parser over the given source reader.
func NewParser(r *bufio.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a source file into a program.  It returns the first lexical or
// syntactic error encountered; no recovery is attempted.
func Parse(path string, r io.Reader) (prog *ast.Program, err error) {
	defer report.CatchError(&err)

	p := NewParser(bufio.NewReader(r))
	p.next()

	prog = p.parseProgram()
	prog.Path = path

	return prog, nil
}

// -----------------------------------------------------------------------------

// program := function* ;
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.has(TOK_EOF) {
		prog.Funcs = append(prog.Funcs, p.parseFunction())
	}

	return prog
}

// function := type IDENT '(' [params] ')' block ;
// params := type IDENT {',' type IDENT} ;
func (p *Parser) parseFunction() *ast.FuncDecl {
	startSpan := p.tok.Span
	returnType := p.parseType()

	nameTok := p.want(TOK_IDENT)
	p.want(TOK_LPAREN)

	var params []ast.Param
	for !p.has(TOK_RPAREN) {
		if len(params) > 0 {
			p.want(TOK_COMMA)
		}

		paramType := p.parseType()
		paramTok := p.want(TOK_IDENT)

		params = append(params, ast.Param{
			Name: paramTok.Value,
			Type: paramType,
			Span: paramTok.Span,
		})
	}
	p.want(TOK_RPAREN)

	body := p.parseBlock()

	return &ast.FuncDecl{
		StmtBase:   ast.NewStmtBase(report.NewSpanOver(startSpan, nameTok.Span)),
		Name:       nameTok.Value,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
	}
}

// type := 'unsigned' ['int'|'short'|'long'|'char']
//       | 'int' | 'short' | 'long' | 'char'
//       | 'float' | 'double' | 'bool' | 'void' ;
func (p *Parser) parseType() types.Type {
	switch p.tok.Kind {
	case TOK_UNSIGNED:
		p.next()

		bits := 32
		switch p.tok.Kind {
		case TOK_INT:
			p.next()
		case TOK_SHORT:
			bits = 16
			p.next()
		case TOK_LONG:
			bits = 64
			p.next()
		case TOK_CHAR:
			bits = 8
			p.next()
		}

		return types.IntType{Bits: bits, Unsigned: true}
	case TOK_INT:
		p.next()
		return types.I32
	case TOK_SHORT:
		p.next()
		return types.I16
	case TOK_LONG:
		p.next()
		return types.I64
	case TOK_CHAR:
		p.next()
		return types.I8
	case TOK_FLOAT:
		p.next()
		return types.F32
	case TOK_DOUBLE:
		p.next()
		return types.F64
	case TOK_BOOL:
		p.next()
		return types.Bool
	case TOK_VOID:
		p.next()
		return types.Void
	default:
		p.reject("expected a type")
		return nil
	}
}

// isTypeToken returns whether a token kind begins a type production.
func isTypeToken(kind int) bool {
	switch kind {
	case TOK_INT, TOK_FLOAT, TOK_DOUBLE, TOK_SHORT, TOK_LONG, TOK_UNSIGNED, TOK_CHAR, TOK_BOOL, TOK_VOID:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.lookbehind = p.tok
	p.tok = p.lexer.NextToken()
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind, consumes it,
// and returns it.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject("expected %s", tokenKindRepr(kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// reject raises a parse error at the current token.
func (p *Parser) reject(msg string, args ...interface{}) {
	panic(report.Raise(report.ErrParse, p.tok.Span, msg, args...))
}

// -----------------------------------------------------------------------------

// tokenKindReprs maps token kinds to display strings used in parse errors.
var tokenKindReprs = map[int]string{
	TOK_IDENT:     "an identifier",
	TOK_NUMLIT:    "a number",
	TOK_STRINGLIT: "a string",
	TOK_LPAREN:    "`(`",
	TOK_RPAREN:    "`)`",
	TOK_LBRACE:    "`{`",
	TOK_RBRACE:    "`}`",
	TOK_LBRACKET:  "`[`",
	TOK_RBRACKET:  "`]`",
	TOK_COMMA:     "`,`",
	TOK_SEMI:      "`;`",
	TOK_ASSIGN:    "`=`",
	TOK_EOF:       "end of file",
}

func tokenKindRepr(kind int) string {
	if repr, ok := tokenKindReprs[kind]; ok {
		return repr
	}

	return "a different token"
}
