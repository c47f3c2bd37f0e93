package nql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseMain(t *testing.T, body string) *Proc {
	t.Helper()
	prog, err := Parse("proc main() { " + body + " }")
	assert.NoError(t, err)
	return prog.Procs["main"]
}

func TestParse_Decls(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("global a; global b; proc f(x, y) { } proc main() { }")
	assert.NoError(err)
	assert.Len(prog.Globals, 2)
	assert.Equal([]string{"a", "b", "f", "main"}, prog.Names)
	assert.Equal([]string{"x", "y"}, prog.Procs["f"].Params)
	assert.Empty(prog.Procs["main"].Params)
}

func TestParse_Precedence(t *testing.T) {
	assert := assert.New(t)

	main := parseMain(t, "a = 1 + 2 * 3;")
	st := main.Body.Body[0]
	assert.Equal(STMT_ASSIGN, st.Kind)
	assert.Equal(NAT_ADD, st.Expr.Kind)
	assert.Equal(NAT_LIT, st.Expr.Left.Kind)
	assert.Equal(NAT_MUL, st.Expr.Right.Kind)

	main = parseMain(t, "a = 1 - 2 - 3;")
	st = main.Body.Body[0]
	assert.Equal(NAT_MONUS, st.Expr.Kind)
	assert.Equal(NAT_MONUS, st.Expr.Left.Kind)
	assert.Equal(3, st.Expr.Right.Value)
}

func TestParse_Parens(t *testing.T) {
	assert := assert.New(t)

	main := parseMain(t, "a = (1 + 2) * 3;")
	st := main.Body.Body[0]
	assert.Equal(NAT_MUL, st.Expr.Kind)
	assert.Equal(NAT_ADD, st.Expr.Left.Kind)
}

func TestParse_NotBindsLoosest(t *testing.T) {
	assert := assert.New(t)

	main := parseMain(t, "while (!a < 1 && b < 2) { }")
	cond := main.Body.Body[0].Cond
	assert.Equal(BOOL_NOT, cond.Kind)
	assert.Equal(BOOL_AND, cond.X.Kind)
	assert.Equal(BOOL_LESS, cond.X.X.Kind)
	assert.Equal(BOOL_LESS, cond.X.Y.Kind)
}

func TestParse_OrAnd(t *testing.T) {
	assert := assert.New(t)

	main := parseMain(t, "if (a < 1 || b < 2 && c < 3) { }")
	cond := main.Body.Body[0].Cond
	assert.Equal(BOOL_OR, cond.Kind)
	assert.Equal(BOOL_LESS, cond.X.Kind)
	assert.Equal(BOOL_AND, cond.Y.Kind)
}

func TestParse_NonAssociative(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("proc main() { if (a < b < c) { } }")
	assert.ErrorIs(err, ErrNonAssociative)
}

func TestParse_NatExpected(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("proc main() { a = b < c; }")
	assert.ErrorIs(err, ErrNatExpected)
}

func TestParse_BoolExpected(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("proc main() { while (a + 1) { } }")
	assert.ErrorIs(err, ErrBoolExpected)

	_, err = Parse("proc main() { a = !b; }")
	assert.ErrorIs(err, ErrBoolExpected)
}

func TestParse_Statements(t *testing.T) {
	assert := assert.New(t)

	main := parseMain(t, "while (a < 1) { b = 2; } if (a == 1) { } f(a, b); return; { b = 1; }")
	kinds := []StmtKind{}
	for _, st := range main.Body.Body {
		kinds = append(kinds, st.Kind)
	}
	assert.Equal([]StmtKind{STMT_WHILE, STMT_IF, STMT_CALL, STMT_RETURN, STMT_BLOCK}, kinds)

	call := main.Body.Body[2]
	assert.Equal("f", call.Name)
	assert.Equal([]string{"a", "b"}, call.Args)
}

func TestParse_TokenError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("proc main() { a + 1; }")
	assert.ErrorIs(err, ErrToken{})

	_, err = Parse("main() { }")
	assert.ErrorIs(err, ErrToken{})
}

func TestProgram_Dump(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("global a; proc main() { a = 1 + 2; }")
	assert.NoError(err)

	var out strings.Builder
	prog.Dump(&out)
	assert.Equal("global a\nproc main[]\n  assign a (+ 1 2)\n", out.String())
}
