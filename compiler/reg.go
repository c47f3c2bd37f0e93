package compiler

import (
	"fmt"

	"github.com/ezrec/nql/tm"
)

// Register is a nonnegative counter stored on the tape as a unary run
// of value+1 ones. The extra one is the occupancy mark written by
// Init; it keeps a double zero from appearing inside the register
// area.
type Register struct {
	Name  string
	Index int

	Inc  *Subroutine // add one, counter +1
	Dec  *Subroutine // subtract one; counter +1 when already zero, +2 otherwise
	Init *Subroutine // write the occupancy mark, counter +1
}

// Register returns the register with the given name, allocating the
// next tape index on first use.
func (b *Builder) Register(name string) (*Register, error) {
	return Memo(b, "register", name, func() (reg *Register, err error) {
		reg = &Register{Name: name, Index: len(b.registers)}
		b.registers = append(b.registers, reg)

		reg.Inc, err = b.regOp("inc", reg.Index, b.incCore, false)
		if err != nil {
			return
		}
		reg.Dec, err = b.regOp("dec", reg.Index, b.decCore, true)
		if err != nil {
			return
		}
		reg.Init, err = b.regOp("init", reg.Index, b.initCore, false)
		return
	})
}

// EntryState returns the machine entry: one cell left of the program
// counter, stepping right into the dispatch root.
func (b *Builder) EntryState() (tm.StateID, error) {
	return Memo(b, "entry", "", func() (id tm.StateID, err error) {
		id = b.Graph.New("!ENTRY")
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_RIGHT, Next: b.Root()})
		return
	})
}

// DispatchOrder returns the state that finishes a program counter
// update with the low order bits already settled, propagating an
// increment carry when carry is nonzero, and rewinds into the shared
// entry state.
func (b *Builder) DispatchOrder(order, carry int) (tm.StateID, error) {
	if order >= b.PCBits {
		// A carry past the top bit is dropped; counter arithmetic is
		// modulo 2^PCBits.
		return b.EntryState()
	}
	return Memo(b, "dispatch_order", fmt.Sprintf("%d,%d", order, carry), func() (id tm.StateID, err error) {
		if carry != 0 {
			var flip, keep tm.StateID
			flip, err = b.DispatchOrder(order+1, 1)
			if err != nil {
				return
			}
			keep, err = b.DispatchOrder(order+1, 0)
			if err != nil {
				return
			}
			id = b.Graph.New(fmt.Sprintf("!CARRY%d", order))
			err = b.Graph.Define(id, tm.Def{
				Move:   tm.MOVE_LEFT,
				Write0: tm.SYMBOL_ONE,
				Next0:  keep,
				Write1: tm.SYMBOL_ZERO,
				Next1:  flip,
			})
			return
		}

		var next tm.StateID
		next, err = b.DispatchOrder(order+1, 0)
		if err != nil {
			return
		}
		id = b.Graph.New(fmt.Sprintf("!REWIND%d", order))
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_LEFT, Next: next})
		return
	})
}

// nextState resumes dispatch at counter+1, entered on the lowest
// counter bit.
func (b *Builder) nextState() (tm.StateID, error) {
	return b.DispatchOrder(0, 1)
}

// nextState2 resumes dispatch at counter+2, entered on the lowest
// counter bit. Adding two never changes bit zero, so the carry starts
// one bit up.
func (b *Builder) nextState2() (tm.StateID, error) {
	return Memo(b, "nextstate2", "", func() (id tm.StateID, err error) {
		next, err := b.DispatchOrder(1, 1)
		if err != nil {
			return
		}
		id = b.Graph.New("!NEXT2")
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_LEFT, Next: next})
		return
	})
}

// homePlusOne walks the head left to the first double zero (the pad
// left of the register area) and resumes dispatch at counter+1.
func (b *Builder) homePlusOne() (tm.StateID, error) {
	return Memo(b, "home1", "", func() (id tm.StateID, err error) {
		next, err := b.nextState()
		if err != nil {
			return
		}
		h1 := b.Graph.New("!HOME1")
		h1b := b.Graph.New("!HOME1b")
		err = b.Graph.Define(h1b, tm.Def{Move: tm.MOVE_LEFT, Next1: h1, Next0: next})
		if err != nil {
			return
		}
		err = b.Graph.Define(h1, tm.Def{Move: tm.MOVE_LEFT, Next1: h1, Next0: h1b})
		id = h1
		return
	})
}

// homePlusTwo is homePlusOne resuming at counter+2. Returns the
// hunting state and the one-zero-seen state; decrement enters the
// latter directly when it already knows a zero is behind the head.
func (b *Builder) homePlusTwo() (states [2]tm.StateID, err error) {
	return Memo(b, "home2", "", func() (states [2]tm.StateID, err error) {
		next, err := b.nextState2()
		if err != nil {
			return
		}
		h2 := b.Graph.New("!HOME2")
		h2b := b.Graph.New("!HOME2b")
		err = b.Graph.Define(h2b, tm.Def{Move: tm.MOVE_LEFT, Next1: h2, Next0: next})
		if err != nil {
			return
		}
		err = b.Graph.Define(h2, tm.Def{Move: tm.MOVE_LEFT, Next1: h2, Next0: h2b})
		if err != nil {
			return
		}
		states = [2]tm.StateID{h2, h2b}
		return
	})
}

// skip returns the chain that moves the head right over count unary
// runs, then enters core on the first cell of the next run. Chains
// with the same remaining count and core are shared across registers.
func (b *Builder) skip(count int, core tm.StateID) (tm.StateID, error) {
	if count == 0 {
		return core, nil
	}
	return Memo(b, "skip", fmt.Sprintf("%d,%d", count, core), func() (id tm.StateID, err error) {
		inner, err := b.skip(count-1, core)
		if err != nil {
			return
		}
		id = b.Graph.New(fmt.Sprintf("%s:SKIP%d", b.Graph.Name(core), count))
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_RIGHT, Next1: id, Next0: inner})
		return
	})
}

// incCore inserts a one at the head by carrying cells rightward. The
// displaced symbols ripple until a zero carry lands on the zero past
// the register area, then the head homes at counter+1.
func (b *Builder) incCore() (tm.StateID, error) {
	return Memo(b, "inc_core", "", func() (id tm.StateID, err error) {
		home, err := b.homePlusOne()
		if err != nil {
			return
		}
		carry1 := b.Graph.New("!INC1")
		carry0 := b.Graph.New("!INC0")
		err = b.Graph.Define(carry1, tm.Def{
			Write: tm.SYMBOL_ONE,
			Move:  tm.MOVE_RIGHT,
			Next1: carry1,
			Next0: carry0,
		})
		if err != nil {
			return
		}
		err = b.Graph.Define(carry0, tm.Def{
			Write: tm.SYMBOL_ZERO,
			Move1: tm.MOVE_RIGHT,
			Next1: carry1,
			Move0: tm.MOVE_LEFT,
			Next0: home,
		})
		id = carry1
		return
	})
}

// initCore writes the occupancy mark on the virgin cell under the
// head and homes at counter+1.
func (b *Builder) initCore() (tm.StateID, error) {
	return Memo(b, "init_core", "", func() (id tm.StateID, err error) {
		home, err := b.homePlusOne()
		if err != nil {
			return
		}
		id = b.Graph.New("!INIT")
		err = b.Graph.Define(id, tm.Def{Write: tm.SYMBOL_ONE, Move: tm.MOVE_LEFT, Next: home})
		return
	})
}

// decCore removes a one from the run under the head. A run holding
// only the occupancy mark is zero: home at counter+1 unchanged.
// Otherwise the mark is cleared, the area end is found, and the tail
// of the area shifts left one cell, restoring the mark in passing;
// the head homes at counter+2.
func (b *Builder) decCore() (tm.StateID, error) {
	return Memo(b, "dec_core", "", func() (id tm.StateID, err error) {
		home1, err := b.homePlusOne()
		if err != nil {
			return
		}
		home2, err := b.homePlusTwo()
		if err != nil {
			return
		}

		entry := b.Graph.New("!DEC")
		probe := b.Graph.New("!DECp")
		mark := b.Graph.New("!DECm")
		seek := b.Graph.New("!DECs")
		seek2 := b.Graph.New("!DECs2")
		turn := b.Graph.New("!DECt")
		shift0 := b.Graph.New("!DEC0")
		shift1 := b.Graph.New("!DEC1")

		err = b.Graph.Define(entry, tm.Def{Move: tm.MOVE_RIGHT, Next: probe})
		if err != nil {
			return
		}
		err = b.Graph.Define(probe, tm.Def{Move: tm.MOVE_LEFT, Next0: home1, Next1: mark})
		if err != nil {
			return
		}
		err = b.Graph.Define(mark, tm.Def{Write: tm.SYMBOL_ZERO, Move: tm.MOVE_RIGHT, Next: seek})
		if err != nil {
			return
		}
		err = b.Graph.Define(seek, tm.Def{Move: tm.MOVE_RIGHT, Next1: seek, Next0: seek2})
		if err != nil {
			return
		}
		err = b.Graph.Define(seek2, tm.Def{
			Move1: tm.MOVE_RIGHT,
			Next1: seek,
			Move0: tm.MOVE_LEFT,
			Next0: turn,
		})
		if err != nil {
			return
		}
		err = b.Graph.Define(turn, tm.Def{Move: tm.MOVE_LEFT, Next: shift0})
		if err != nil {
			return
		}
		err = b.Graph.Define(shift0, tm.Def{
			Write: tm.SYMBOL_ZERO,
			Move:  tm.MOVE_LEFT,
			Next1: shift1,
			Next0: home2[1],
		})
		if err != nil {
			return
		}
		err = b.Graph.Define(shift1, tm.Def{
			Write: tm.SYMBOL_ONE,
			Move:  tm.MOVE_LEFT,
			Next1: shift1,
			Next0: shift0,
		})
		if err != nil {
			return
		}

		id = entry
		return
	})
}

// regOp wraps a core in the two-step pad crossing and the index skip
// chain, producing the order zero subprogram for one register.
func (b *Builder) regOp(op string, index int, core func() (tm.StateID, error), isDec bool) (*Subroutine, error) {
	return Memo(b, "regop", fmt.Sprintf("%s,%d", op, index), func() (sub *Subroutine, err error) {
		c, err := core()
		if err != nil {
			return
		}
		chain, err := b.skip(index, c)
		if err != nil {
			return
		}

		name := fmt.Sprintf("%s(%d)", op, index)
		pad2 := b.Graph.New(name + "'")
		err = b.Graph.Define(pad2, tm.Def{Move: tm.MOVE_RIGHT, Next: chain})
		if err != nil {
			return
		}
		entry := b.Graph.New(name)
		err = b.Graph.Define(entry, tm.Def{Move: tm.MOVE_RIGHT, Next: pad2})
		if err != nil {
			return
		}

		sub = &Subroutine{Name: name, Entry: entry, Order: 0, IsDecrement: isDec}
		return
	})
}

// Noop is the subprogram of the given order that does nothing but
// advance the program counter past its own slots.
func (b *Builder) Noop(order int) (*Subroutine, error) {
	return Memo(b, "noop", fmt.Sprintf("%d", order), func() (sub *Subroutine, err error) {
		next, err := b.DispatchOrder(order, 1)
		if err != nil {
			return
		}
		id := b.Graph.New(fmt.Sprintf("noop(%d)", order))
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_LEFT, Next: next})
		if err != nil {
			return
		}
		sub = &Subroutine{Name: fmt.Sprintf("noop(%d)", order), Entry: id, Order: order}
		return
	})
}
