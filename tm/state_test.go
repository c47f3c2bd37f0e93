package tm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_Define(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	b := g.New("B")
	assert.False(g.Defined(a))

	err := g.Define(a, Def{Move: MOVE_RIGHT, Next: b, Write1: SYMBOL_ZERO})
	assert.NoError(err)
	assert.True(g.Defined(a))

	tr, err := g.Transitions(a)
	assert.NoError(err)
	assert.Equal(Transition{Write: SYMBOL_ZERO, Move: MOVE_RIGHT, Next: b}, tr[0])
	assert.Equal(Transition{Write: SYMBOL_ZERO, Move: MOVE_RIGHT, Next: b}, tr[1])
}

func TestGraph_Define_PerSymbol(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")

	err := g.Define(a, Def{Move: MOVE_LEFT, Next: a, Move1: MOVE_RIGHT, Next1: Halt, Write1: SYMBOL_ONE})
	assert.NoError(err)

	t0, err := g.At(a, SYMBOL_ZERO)
	assert.NoError(err)
	assert.Equal(Transition{Write: SYMBOL_ZERO, Move: MOVE_LEFT, Next: a}, t0)

	t1, err := g.At(a, SYMBOL_ONE)
	assert.NoError(err)
	assert.Equal(Transition{Write: SYMBOL_ONE, Move: MOVE_RIGHT, Next: Halt}, t1)
}

func TestGraph_Define_Redefinition(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	assert.NoError(g.Define(a, Def{Move: MOVE_LEFT, Next: Halt}))

	err := g.Define(a, Def{Move: MOVE_RIGHT, Next: Halt})
	assert.ErrorIs(err, ErrRedefinition)
}

func TestGraph_Define_Invalid(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()

	// missing move
	a := g.New("A")
	assert.ErrorIs(g.Define(a, Def{Next: Halt}), ErrInvalidTransition)

	// missing next
	b := g.New("B")
	assert.ErrorIs(g.Define(b, Def{Move: MOVE_LEFT}), ErrInvalidTransition)

	// next outside the arena
	c := g.New("C")
	assert.ErrorIs(g.Define(c, Def{Move: MOVE_LEFT, Next: 1000}), ErrInvalidTransition)

	// bad write symbol
	d := g.New("D")
	assert.ErrorIs(g.Define(d, Def{Move: MOVE_LEFT, Next: Halt, Write: 'x'}), ErrInvalidTransition)
}

func TestGraph_At_Undefined(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")

	_, err := g.At(a, SYMBOL_ZERO)
	assert.ErrorIs(err, ErrUndefined)

	_, err = g.Transitions(a)
	assert.ErrorIs(err, ErrUndefined)
}

func TestGraph_At_BadID(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	_, err := g.At(0, SYMBOL_ZERO)
	assert.ErrorIs(err, ErrStateInvalid)

	_, err = g.At(7, SYMBOL_ZERO)
	assert.ErrorIs(err, ErrStateInvalid)
}

func TestGraph_Clone(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	b := g.New("B")
	assert.NoError(g.Define(a, Def{Move: MOVE_RIGHT, Next: a, Write0: SYMBOL_ONE}))

	assert.NoError(g.Clone(b, a))
	ta, _ := g.Transitions(a)
	tb, err := g.Transitions(b)
	assert.NoError(err)
	assert.Equal(ta, tb)

	// cloning onto a defined state is a redefinition
	assert.ErrorIs(g.Clone(b, a), ErrRedefinition)

	// cloning from an undefined state
	c := g.New("C")
	d := g.New("D")
	assert.ErrorIs(g.Clone(d, c), ErrUndefined)
}

func TestGraph_Name(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	assert.Equal("A", g.Name(a))
	assert.Equal("HALT", g.Name(Halt))
}
