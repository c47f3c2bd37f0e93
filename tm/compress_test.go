package tm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// two-state blinker: A writes one and moves right to B, B halts
func blinker(g *Graph) (a StateID) {
	a = g.New("A")
	b := g.New("B")
	_ = g.Define(a, Def{Write: SYMBOL_ONE, Move: MOVE_RIGHT, Next: b})
	_ = g.Define(b, Def{Move: MOVE_LEFT, Next: Halt})
	return
}

func TestGraph_Reachable(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	b := g.New("B")
	c := g.New("C")
	_ = g.New("unreached")
	assert.NoError(g.Define(a, Def{Move: MOVE_RIGHT, Next0: b, Next1: c}))
	assert.NoError(g.Define(b, Def{Move: MOVE_LEFT, Next: Halt}))
	assert.NoError(g.Define(c, Def{Move: MOVE_LEFT, Next: b}))

	ids, err := g.Reachable(a)
	assert.NoError(err)
	// zero branch first
	assert.Equal([]StateID{a, b, c}, ids)
}

func TestGraph_Reachable_Halt(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	ids, err := g.Reachable(Halt)
	assert.NoError(err)
	assert.Empty(ids)
}

func TestGraph_Reachable_Undefined(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.New("A")
	_, err := g.Reachable(a)
	assert.ErrorIs(err, ErrUndefined)
}

func TestGraph_Compress(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	// d1 and d2 are identical; a branches between them
	a := g.New("A")
	d1 := g.New("D1")
	d2 := g.New("D2")
	assert.NoError(g.Define(a, Def{Move: MOVE_RIGHT, Next0: d1, Next1: d2}))
	assert.NoError(g.Define(d1, Def{Write: SYMBOL_ONE, Move: MOVE_LEFT, Next: Halt}))
	assert.NoError(g.Define(d2, Def{Write: SYMBOL_ONE, Move: MOVE_LEFT, Next: Halt}))

	entry, err := g.Compress(a)
	assert.NoError(err)
	assert.Equal(a, entry)

	ids, err := g.Reachable(entry)
	assert.NoError(err)
	assert.Len(ids, 2)

	// both branches of a now share one state
	tr, _ := g.Transitions(a)
	assert.Equal(tr[0].Next, tr[1].Next)
}

func TestGraph_Compress_Cascade(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	// merging the leaves makes the two inner states identical too
	a := g.New("A")
	b1 := g.New("B1")
	b2 := g.New("B2")
	c1 := g.New("C1")
	c2 := g.New("C2")
	assert.NoError(g.Define(a, Def{Move: MOVE_RIGHT, Next0: b1, Next1: b2}))
	assert.NoError(g.Define(b1, Def{Move: MOVE_RIGHT, Next: c1}))
	assert.NoError(g.Define(b2, Def{Move: MOVE_RIGHT, Next: c2}))
	assert.NoError(g.Define(c1, Def{Move: MOVE_LEFT, Next: Halt}))
	assert.NoError(g.Define(c2, Def{Move: MOVE_LEFT, Next: Halt}))

	entry, err := g.Compress(a)
	assert.NoError(err)

	ids, err := g.Reachable(entry)
	assert.NoError(err)
	assert.Len(ids, 3)
}

func TestGraph_Compress_Idempotent(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := blinker(g)

	entry, err := g.Compress(a)
	assert.NoError(err)
	before, _ := g.Reachable(entry)

	again, err := g.Compress(entry)
	assert.NoError(err)
	assert.Equal(entry, again)
	after, _ := g.Reachable(again)
	assert.Equal(before, after)
}

func TestGraph_Print(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := blinker(g)

	var out strings.Builder
	assert.NoError(g.Print(&out, a))
	assert.Equal("A = 1 R B 1 R B\nB = 0 L HALT 1 L HALT\n", out.String())
}
