package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func (sub *Subroutine) prefixes() (out []string) {
	for _, child := range sub.Children {
		out = append(out, child.Prefix)
	}
	return
}

func TestBuilder_Makesub_RoundsToPowerOfTwo(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	sub, err := b.Makesub("three", noop, noop, noop)
	assert.NoError(err)
	assert.Equal(2, sub.Order)
	assert.Equal([]string{"00", "01", "10", "11"}, sub.prefixes())
	// the fourth slot is rounding padding
	assert.Same(noop, sub.Children[3].Sub)
}

func TestBuilder_Makesub_SingleSlot(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	sub, err := b.Makesub("one", noop)
	assert.NoError(err)
	assert.Equal(0, sub.Order)
	assert.Equal(noop.Entry, sub.Entry)
}

func TestBuilder_Makesub_Alignment(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop0, err := b.Noop(0)
	assert.NoError(err)
	noop1, err := b.Noop(1)
	assert.NoError(err)

	sub, err := b.Makesub("aligned", noop0, noop1)
	assert.NoError(err)
	assert.Equal(2, sub.Order)
	// noop1 is self-aligned at offset 2 behind inserted padding
	assert.Equal([]string{"00", "01", "1"}, sub.prefixes())
	assert.Same(noop1, sub.Children[2].Sub)
}

func TestBuilder_Makesub_Empty(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	_, err := b.Makesub("empty", Label("only"))
	assert.ErrorIs(err, ErrEmptySubprogram)
}

func TestBuilder_Makesub_UnresolvedLabel(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	_, err = b.Makesub("lost", noop, Goto("nowhere"))
	assert.ErrorIs(err, ErrUnresolvedLabel)

	var el ErrLabel
	assert.ErrorAs(err, &el)
	assert.Equal("nowhere", el.Label)
}

func TestBuilder_Makesub_Shared(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	first, err := b.Makesub("same", noop, noop)
	assert.NoError(err)
	second, err := b.Makesub("same", noop, noop)
	assert.NoError(err)
	assert.Same(first, second)
}

func TestBuilder_Makesub_SharedDispatch(t *testing.T) {
	assert := assert.New(t)

	// identical layouts under one name share decision tree states
	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	first, err := b.Makesub("same", noop, noop, Label("x"), noop)
	assert.NoError(err)
	second, err := b.Makesub("same", noop, noop, Label("y"), noop)
	assert.NoError(err)
	assert.NotSame(first, second)
	assert.Equal(first.Entry, second.Entry)
}

func TestBuilder_Makesub_ShortBranch(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	// goto at offset 1 back to offset 0 differs only in the low bit
	sub, err := b.Makesub("tight", Label("top"), noop, Goto("top"))
	assert.NoError(err)
	assert.Equal(1, sub.Order)
	assert.Equal("jump(0)", sub.Children[1].Sub.Name)
}

func TestBuilder_Makesub_WideBranchSharesFullOrder(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	// sixteen slots apart: the minimal patch would need five bits, so
	// the full-order patch is shared instead
	parts := []Part{Label("top")}
	for i := 0; i < 16; i++ {
		parts = append(parts, noop)
	}
	parts = append(parts, Goto("top"))
	sub, err := b.Makesub("wide", parts...)
	assert.NoError(err)
	assert.Equal(5, sub.Order)
	assert.Equal("jump(00000)", sub.Children[16].Sub.Name)
}

func TestBuilder_Makesub_AdderMode(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	b.BranchAdder = true
	noop, err := b.Noop(0)
	assert.NoError(err)

	sub, err := b.Makesub("rel", Label("top"), noop, Goto("top"))
	assert.NoError(err)
	// delta (0-1) mod 2 is one
	assert.Equal("adder(1)", sub.Children[1].Sub.Name)
}

func TestThreadGotos_Chain(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	parts := []Part{Goto("x"), noop, Label("x"), Goto("y"), Label("y"), noop}
	out := threadGotos(parts)

	// the first goto now names the ultimate label, the second falls
	// through and is dropped
	assert.Equal([]Part{Goto("y"), noop, Label("x"), Label("y"), noop}, out)
}

func TestThreadGotos_FallThrough(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	parts := []Part{Goto("next"), Label("next"), noop}
	out := threadGotos(parts)
	assert.Equal([]Part{Label("next"), noop}, out)
}

func TestThreadGotos_KeepsDecrementSkipSlot(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	x, err := b.Register("x")
	assert.NoError(err)
	noop, err := b.Noop(0)
	assert.NoError(err)

	// the goto is dec's failure continuation even though it targets
	// the very next part
	parts := []Part{x.Dec, Goto("next"), Label("next"), noop}
	out := threadGotos(parts)
	assert.Equal(parts, out)
}

func TestThreadGotos_CycleGuard(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	noop, err := b.Noop(0)
	assert.NoError(err)

	// two gotos that point at each other terminate threading; the
	// first one falls through to its own target and is dropped
	parts := []Part{noop, Label("a"), Goto("b"), Label("b"), Goto("a"), noop}
	out := threadGotos(parts)
	assert.Equal([]Part{noop, Label("a"), Label("b"), Goto("a"), noop}, out)
}

func TestBuilder_Transfer_Layout(t *testing.T) {
	assert := assert.New(t)

	b := testBuilder()
	x, err := b.Register("x")
	assert.NoError(err)
	y, err := b.Register("y")
	assert.NoError(err)

	sub, err := b.Transfer(x, y)
	assert.NoError(err)
	assert.Equal(3, sub.Order)
	assert.Same(x.Dec, sub.Children[0].Sub)
	assert.Same(y.Inc, sub.Children[2].Sub)

	// identical transfers share one subprogram
	again, err := b.Transfer(x, y)
	assert.NoError(err)
	assert.Same(sub, again)
}
