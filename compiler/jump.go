package compiler

import (
	"fmt"

	"github.com/ezrec/nql/tm"
)

// bitsLSB returns the low count bits of value, least significant
// first.
func bitsLSB(value, count int) string {
	out := make([]byte, count)
	for i := 0; i < count; i++ {
		out[i] = byte('0' + ((value >> i) & 1))
	}
	return string(out)
}

// bitsMSB returns the low count bits of value, most significant
// first.
func bitsMSB(value, count int) string {
	out := make([]byte, count)
	for i := 0; i < count; i++ {
		out[count-1-i] = byte('0' + ((value >> i) & 1))
	}
	return string(out)
}

// jump builds the order zero patch subprogram that overwrites the low
// counter bits with the given values (least significant first) and
// restarts dispatch without an increment.
func (b *Builder) jump(bits string) (*Subroutine, error) {
	return Memo(b, "jump", bits, func() (sub *Subroutine, err error) {
		next, err := b.DispatchOrder(len(bits), 0)
		if err != nil {
			return
		}

		// Chain leftward over the bits, low bit first.
		for i := len(bits) - 1; i >= 0; i-- {
			id := b.Graph.New(fmt.Sprintf("jump(%s)@%d", bits, i))
			err = b.Graph.Define(id, tm.Def{
				Write: bits[i],
				Move:  tm.MOVE_LEFT,
				Next:  next,
			})
			if err != nil {
				return
			}
			next = id
		}

		entry := b.Graph.New(fmt.Sprintf("jump(%s)", bits))
		err = b.Graph.Define(entry, tm.Def{Move: tm.MOVE_LEFT, Next: next})
		if err != nil {
			return
		}
		sub = &Subroutine{Name: fmt.Sprintf("jump(%s)", bits), Entry: entry, Order: 0}
		return
	})
}

// addChain adds the remaining delta bits (least significant first)
// into the counter cells under the head, tracking the ripple carry.
// done counts the bits already added; a carry out of the last bit is
// dropped.
func (b *Builder) addChain(bits string, carry, done int) (tm.StateID, error) {
	if len(bits) == 0 {
		return b.DispatchOrder(done, 0)
	}
	return Memo(b, "addchain", fmt.Sprintf("%s,%d,%d", bits, carry, done), func() (id tm.StateID, err error) {
		delta := int(bits[0] - '0')

		sum0 := delta + carry
		sum1 := 1 + delta + carry
		next0, err := b.addChain(bits[1:], sum0>>1, done+1)
		if err != nil {
			return
		}
		next1, err := b.addChain(bits[1:], sum1>>1, done+1)
		if err != nil {
			return
		}

		id = b.Graph.New(fmt.Sprintf("add(%s,%d)", bits, carry))
		err = b.Graph.Define(id, tm.Def{
			Move:   tm.MOVE_LEFT,
			Write0: byte('0' + (sum0 & 1)),
			Next0:  next0,
			Write1: byte('0' + (sum1 & 1)),
			Next1:  next1,
		})
		return
	})
}

// adder builds the order zero subprogram that adds a relative offset
// (modulo the enclosing subprogram size) to the counter.
func (b *Builder) adder(bits string) (*Subroutine, error) {
	return Memo(b, "adder", bits, func() (sub *Subroutine, err error) {
		chain, err := b.addChain(bits, 0, 0)
		if err != nil {
			return
		}
		entry := b.Graph.New(fmt.Sprintf("adder(%s)", bits))
		err = b.Graph.Define(entry, tm.Def{Move: tm.MOVE_LEFT, Next: chain})
		if err != nil {
			return
		}
		sub = &Subroutine{Name: fmt.Sprintf("adder(%s)", bits), Entry: entry, Order: 0}
		return
	})
}
