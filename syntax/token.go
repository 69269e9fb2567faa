package syntax

import "nanoc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  This may not directly correspond to the
	// matched source text: eg. the value of a string token has the leading
	// quotes trimmed off for convenience.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_LET = iota
	TOK_FUNCTION

	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_FOR
	TOK_BREAK
	TOK_CONTINUE
	TOK_PRINT
	TOK_RETURN

	TOK_INT
	TOK_FLOAT
	TOK_DOUBLE
	TOK_SHORT
	TOK_LONG
	TOK_UNSIGNED
	TOK_CHAR
	TOK_BOOL
	TOK_VOID

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN
	TOK_PLUSASSIGN
	TOK_INC
	TOK_DEC

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_NUMLIT
	TOK_STRINGLIT
	TOK_TRUE
	TOK_FALSE

	TOK_EOF
)

// keywordPatterns maps keyword strings to their token kind.
var keywordPatterns = map[string]int{
	"let":      TOK_LET,
	"function": TOK_FUNCTION,

	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"for":      TOK_FOR,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"print":    TOK_PRINT,
	"return":   TOK_RETURN,

	"int":      TOK_INT,
	"float":    TOK_FLOAT,
	"double":   TOK_DOUBLE,
	"short":    TOK_SHORT,
	"long":     TOK_LONG,
	"unsigned": TOK_UNSIGNED,
	"char":     TOK_CHAR,
	"bool":     TOK_BOOL,
	"void":     TOK_VOID,

	"true":  TOK_TRUE,
	"false": TOK_FALSE,
}
