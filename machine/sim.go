package machine

import (
	"github.com/ezrec/nql/tm"
)

// Simulator runs a compiled machine on an initially blank tape. The
// tape is the current cell plus two half-tape stacks; cells that were
// never visited read as zero.
type Simulator struct {
	Graph   *tm.Graph
	State   tm.StateID
	Current byte
	Pos     int
	Left    tm.Stack
	Right   tm.Stack
	Steps   int
}

// Simulator returns a fresh simulation positioned one cell left of
// the program counter.
func (m *Machine) Simulator() *Simulator {
	return &Simulator{
		Graph:   m.Graph,
		State:   m.Entry,
		Current: tm.SYMBOL_ZERO,
		Pos:     -1,
	}
}

// Step executes one transition. done reports the halt state.
func (s *Simulator) Step() (done bool, err error) {
	if s.State == tm.Halt {
		done = true
		return
	}

	t, err := s.Graph.At(s.State, s.Current)
	if err != nil {
		return
	}

	if t.Move == tm.MOVE_RIGHT {
		s.Left.Push(t.Write)
		s.Current, _ = s.Right.Pop()
		s.Pos++
	} else {
		s.Right.Push(t.Write)
		s.Current, _ = s.Left.Pop()
		s.Pos--
	}

	s.State = t.Next
	s.Steps++
	done = s.State == tm.Halt
	return
}

// Run steps until the machine halts or limit total steps have been
// taken.
func (s *Simulator) Run(limit int) (halted bool, err error) {
	for s.Steps < limit {
		halted, err = s.Step()
		if halted || err != nil {
			return
		}
	}
	return
}

// Cell returns the tape symbol at an absolute position.
func (s *Simulator) Cell(pos int) byte {
	switch {
	case pos == s.Pos:
		return s.Current
	case pos < s.Pos:
		back := s.Pos - pos
		if back > len(s.Left.Data) {
			return tm.SYMBOL_ZERO
		}
		return s.Left.Data[len(s.Left.Data)-back]
	default:
		ahead := pos - s.Pos
		if ahead > len(s.Right.Data) {
			return tm.SYMBOL_ZERO
		}
		return s.Right.Data[len(s.Right.Data)-ahead]
	}
}
