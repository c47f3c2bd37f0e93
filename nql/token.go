package nql

import (
	"strings"
)

//go:generate go tool stringer -linecomment -type=Kind

// Kind tags a lexical token.
type Kind int

const (
	EOF       Kind = iota // end of input
	INTEGER               // integer
	IDENT                 // identifier
	KW_WHILE              // while
	KW_IF                 // if
	KW_PROC               // proc
	KW_GLOBAL             // global
	KW_RETURN             // return
	LT                    // <
	GT                    // >
	LE                    // <=
	GE                    // >=
	EQ                    // ==
	NE                    // !=
	NOT                   // !
	AND                   // &&
	OR                    // ||
	PLUS                  // +
	MINUS                 // -
	STAR                  // *
	SLASH                 // /
	ASSIGN                // =
	SEMI                  // ;
	COMMA                 // ,
	LPAREN                // (
	RPAREN                // )
	LBRACE                // {
	RBRACE                // }
)

var keywords = map[string]Kind{
	"while":  KW_WHILE,
	"if":     KW_IF,
	"proc":   KW_PROC,
	"global": KW_GLOBAL,
	"return": KW_RETURN,
}

// Token is one lexical token.
type Token struct {
	Kind  Kind
	Text  string
	Line  int
	Value int // INTEGER
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c) || c == '_'
}

// skip consumes whitespace and comments.
func (lx *lexer) skip() error {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.line++
			lx.pos++
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case strings.HasPrefix(lx.src[lx.pos:], "/*"):
			start := lx.line
			end := strings.Index(lx.src[lx.pos+2:], "*/")
			if end < 0 {
				return ErrSyntax{Line: start, Err: ErrUnterminatedComment}
			}
			body := lx.src[lx.pos+2 : lx.pos+2+end]
			lx.line += strings.Count(body, "\n")
			lx.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (tok Token, err error) {
	err = lx.skip()
	if err != nil {
		return
	}

	tok.Line = lx.line
	if lx.pos >= len(lx.src) {
		tok.Kind = EOF
		return
	}

	start := lx.pos
	c := lx.src[lx.pos]

	switch {
	case isDigit(c):
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			tok.Value = tok.Value*10 + int(lx.src[lx.pos]-'0')
			lx.pos++
		}
		tok.Kind = INTEGER
		tok.Text = lx.src[start:lx.pos]
		return

	case isAlpha(c):
		lx.pos++
		for lx.pos < len(lx.src) && isAlnum(lx.src[lx.pos]) {
			lx.pos++
		}
		tok.Text = lx.src[start:lx.pos]
		if kw, ok := keywords[tok.Text]; ok {
			tok.Kind = kw
		} else {
			tok.Kind = IDENT
		}
		return
	}

	two := func(second byte, both, single Kind) {
		lx.pos++
		if lx.pos < len(lx.src) && lx.src[lx.pos] == second {
			lx.pos++
			tok.Kind = both
		} else {
			tok.Kind = single
		}
		tok.Text = lx.src[start:lx.pos]
	}

	switch c {
	case '<':
		two('=', LE, LT)
	case '>':
		two('=', GE, GT)
	case '=':
		two('=', EQ, ASSIGN)
	case '!':
		two('=', NE, NOT)
	case '&':
		if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '&' {
			lx.pos += 2
			tok.Kind, tok.Text = AND, "&&"
		} else {
			err = ErrSyntax{Line: tok.Line, Err: ErrCharacter}
		}
	case '|':
		if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '|' {
			lx.pos += 2
			tok.Kind, tok.Text = OR, "||"
		} else {
			err = ErrSyntax{Line: tok.Line, Err: ErrCharacter}
		}
	case '+':
		lx.pos++
		tok.Kind, tok.Text = PLUS, "+"
	case '-':
		lx.pos++
		tok.Kind, tok.Text = MINUS, "-"
	case '*':
		lx.pos++
		tok.Kind, tok.Text = STAR, "*"
	case '/':
		lx.pos++
		tok.Kind, tok.Text = SLASH, "/"
	case ';':
		lx.pos++
		tok.Kind, tok.Text = SEMI, ";"
	case ',':
		lx.pos++
		tok.Kind, tok.Text = COMMA, ","
	case '(':
		lx.pos++
		tok.Kind, tok.Text = LPAREN, "("
	case ')':
		lx.pos++
		tok.Kind, tok.Text = RPAREN, ")"
	case '{':
		lx.pos++
		tok.Kind, tok.Text = LBRACE, "{"
	case '}':
		lx.pos++
		tok.Kind, tok.Text = RBRACE, "}"
	default:
		err = ErrSyntax{Line: tok.Line, Err: ErrCharacter}
	}
	return
}
