package nql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(t *testing.T, src string) (kinds []Kind) {
	t.Helper()
	lx := newLexer(src)
	for {
		tok, err := lx.next()
		assert.NoError(t, err)
		if tok.Kind == EOF {
			return
		}
		kinds = append(kinds, tok.Kind)
	}
}

func TestLexer_Tokens(t *testing.T) {
	assert := assert.New(t)

	kinds := lexAll(t, "proc main() { a = 10 + b * 2; }")
	assert.Equal([]Kind{
		KW_PROC, IDENT, LPAREN, RPAREN, LBRACE,
		IDENT, ASSIGN, INTEGER, PLUS, IDENT, STAR, INTEGER, SEMI,
		RBRACE,
	}, kinds)
}

func TestLexer_Operators(t *testing.T) {
	assert := assert.New(t)

	kinds := lexAll(t, "< <= > >= == != ! && || - / , =")
	assert.Equal([]Kind{
		LT, LE, GT, GE, EQ, NE, NOT, AND, OR, MINUS, SLASH, COMMA, ASSIGN,
	}, kinds)
}

func TestLexer_Integer(t *testing.T) {
	assert := assert.New(t)

	lx := newLexer("1234")
	tok, err := lx.next()
	assert.NoError(err)
	assert.Equal(INTEGER, tok.Kind)
	assert.Equal(1234, tok.Value)
	assert.Equal("1234", tok.Text)
}

func TestLexer_Keywords(t *testing.T) {
	assert := assert.New(t)

	kinds := lexAll(t, "while proc global if return whilst")
	assert.Equal([]Kind{
		KW_WHILE, KW_PROC, KW_GLOBAL, KW_IF, KW_RETURN, IDENT,
	}, kinds)
}

func TestLexer_Comments(t *testing.T) {
	assert := assert.New(t)

	lx := newLexer("a /* skip\nme */ b")
	tok, err := lx.next()
	assert.NoError(err)
	assert.Equal("a", tok.Text)
	assert.Equal(1, tok.Line)

	tok, err = lx.next()
	assert.NoError(err)
	assert.Equal("b", tok.Text)
	assert.Equal(2, tok.Line)
}

func TestLexer_UnterminatedComment(t *testing.T) {
	assert := assert.New(t)

	lx := newLexer("a /* never closed")
	_, err := lx.next()
	assert.NoError(err)
	_, err = lx.next()
	assert.ErrorIs(err, ErrUnterminatedComment)
}

func TestLexer_Character(t *testing.T) {
	assert := assert.New(t)

	for _, src := range []string{"$", "&", "|", "& &"} {
		lx := newLexer(src)
		_, err := lx.next()
		assert.ErrorIs(err, ErrCharacter, "source %q", src)
	}
}

func TestLexer_Lines(t *testing.T) {
	assert := assert.New(t)

	lx := newLexer("a\nb\n\nc")
	for i, want := range []int{1, 2, 4} {
		tok, err := lx.next()
		assert.NoError(err)
		assert.Equal(want, tok.Line, "token %d", i)
	}
}
