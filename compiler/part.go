package compiler

import (
	"github.com/ezrec/nql/tm"
)

// Part is one element of a subprogram layout passed to Makesub.
type Part interface {
	isPart()
}

// Label marks a program counter offset in a subprogram. Zero width.
type Label string

// Goto branches to a Label in the same subprogram. One slot wide.
type Goto string

func (Label) isPart()       {}
func (Goto) isPart()        {}
func (*Subroutine) isPart() {}

// Child binds a counter-bit prefix to the subprogram it selects.
type Child struct {
	Prefix string
	Sub    *Subroutine
}

// Subroutine is a compiled subprogram occupying 2^Order consecutive
// program counter slots. Immutable once built; structurally identical
// requests share one instance.
type Subroutine struct {
	Name     string
	Entry    tm.StateID
	Order    int
	Children []Child

	// IsDecrement marks operations that skip the next counter slot
	// on success. Their failure slot must survive goto threading.
	IsDecrement bool
}
