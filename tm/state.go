package tm

// StateID names a state in a Graph. IDs start at 1; the zero value is
// reserved so an unset Def field can be told apart from a real state.
type StateID int32

// Halt is the pseudo-state that stops the machine.
const Halt StateID = -1

//go:generate go tool stringer -linecomment -type=Move

// Move is a head direction.
type Move int8

const (
	MOVE_LEFT  Move = -1 // L
	MOVE_RIGHT Move = 1  // R
)

const (
	SYMBOL_ZERO byte = '0'
	SYMBOL_ONE  byte = '1'
)

// Transition is one branch of a state's transition function.
type Transition struct {
	Write byte
	Move  Move
	Next  StateID
}

// Def describes a state's transition function for Define. The scalar
// fields apply to both scanned symbols unless the per-symbol field is
// set. A zero Write preserves the scanned symbol.
type Def struct {
	Write byte
	Move  Move
	Next  StateID

	Write0 byte
	Write1 byte
	Move0  Move
	Move1  Move
	Next0  StateID
	Next1  StateID
}

type state struct {
	name    string
	defined bool
	t       [2]Transition
}

// Graph is a growable arena of states.
type Graph struct {
	states []state
}

func NewGraph() *Graph {
	return &Graph{}
}

// Len returns the number of allocated states.
func (g *Graph) Len() int {
	return len(g.states)
}

// New allocates an undefined state and returns its identity.
func (g *Graph) New(name string) StateID {
	g.states = append(g.states, state{name: name})
	return StateID(len(g.states))
}

func (g *Graph) lookup(id StateID) (st *state, err error) {
	if id <= 0 || int(id) > len(g.states) {
		err = &ErrState{Name: "?", Err: ErrStateInvalid}
		return
	}
	st = &g.states[id-1]
	return
}

// Name returns the state's name; Halt reads as "HALT".
func (g *Graph) Name(id StateID) string {
	if id == Halt {
		return "HALT"
	}
	st, err := g.lookup(id)
	if err != nil {
		return "?"
	}
	return st.name
}

// Defined reports whether the state has a transition function.
func (g *Graph) Defined(id StateID) bool {
	st, err := g.lookup(id)
	return err == nil && st.defined
}

func (g *Graph) branch(def Def, sym int) (t Transition, err error) {
	t = Transition{Write: def.Write, Move: def.Move, Next: def.Next}

	if sym == 0 {
		if def.Write0 != 0 {
			t.Write = def.Write0
		}
		if def.Move0 != 0 {
			t.Move = def.Move0
		}
		if def.Next0 != 0 {
			t.Next = def.Next0
		}
	} else {
		if def.Write1 != 0 {
			t.Write = def.Write1
		}
		if def.Move1 != 0 {
			t.Move = def.Move1
		}
		if def.Next1 != 0 {
			t.Next = def.Next1
		}
	}

	if t.Write == 0 {
		// Preserve the scanned symbol.
		if sym == 0 {
			t.Write = SYMBOL_ZERO
		} else {
			t.Write = SYMBOL_ONE
		}
	}

	if t.Write != SYMBOL_ZERO && t.Write != SYMBOL_ONE {
		err = ErrInvalidTransition
		return
	}
	if t.Move != MOVE_LEFT && t.Move != MOVE_RIGHT {
		err = ErrInvalidTransition
		return
	}
	if t.Next == 0 || t.Next < Halt || int(t.Next) > len(g.states) {
		err = ErrInvalidTransition
		return
	}

	return
}

// Define gives an undefined state its transition function. Defining a
// state twice is an error; so is an incomplete or invalid Def.
func (g *Graph) Define(id StateID, def Def) (err error) {
	st, err := g.lookup(id)
	if err != nil {
		return
	}
	if st.defined {
		return &ErrState{Name: st.name, Err: ErrRedefinition}
	}

	var t [2]Transition
	for sym := 0; sym < 2; sym++ {
		t[sym], err = g.branch(def, sym)
		if err != nil {
			return &ErrState{Name: st.name, Err: err}
		}
	}

	st.t = t
	st.defined = true
	return
}

// Clone copies the transition function of the defined state src onto
// the undefined state dst.
func (g *Graph) Clone(dst, src StateID) (err error) {
	from, err := g.lookup(src)
	if err != nil {
		return
	}
	if !from.defined {
		return &ErrState{Name: from.name, Err: ErrUndefined}
	}
	to, err := g.lookup(dst)
	if err != nil {
		return
	}
	if to.defined {
		return &ErrState{Name: to.name, Err: ErrRedefinition}
	}

	to.t = from.t
	to.defined = true
	return
}

// At returns the transition taken from state id scanning sym.
func (g *Graph) At(id StateID, sym byte) (t Transition, err error) {
	st, err := g.lookup(id)
	if err != nil {
		return
	}
	if !st.defined {
		err = &ErrState{Name: st.name, Err: ErrUndefined}
		return
	}
	if sym == SYMBOL_ONE {
		t = st.t[1]
	} else {
		t = st.t[0]
	}
	return
}

// Transitions returns both branches of a defined state.
func (g *Graph) Transitions(id StateID) (t [2]Transition, err error) {
	st, err := g.lookup(id)
	if err != nil {
		return
	}
	if !st.defined {
		err = &ErrState{Name: st.name, Err: ErrUndefined}
		return
	}
	t = st.t
	return
}
