// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"fmt"
	"log"

	"github.com/ezrec/nql/tm"
)

// Builder owns all mutable state for one compilation.
type Builder struct {
	Graph  *tm.Graph
	PCBits int // width of the program counter on the tape

	BranchAdder bool // resolve branches with relative adders instead of prefix patches
	NoCFGOpt    bool // disable the goto threading pre-pass
	Verbose     bool

	memo      map[memoKey]*memoEntry
	registers []*Register
	gensym    int
	root      tm.StateID
}

type memoKey struct {
	op   string
	args string
}

type memoEntry struct {
	pending bool
	value   any
}

func NewBuilder(g *tm.Graph, pcBits int) *Builder {
	return &Builder{
		Graph:  g,
		PCBits: pcBits,
		memo:   map[memoKey]*memoEntry{},
	}
}

// Memo runs fn at most once per (op, args) pair and caches the result.
// A request for a pair whose construction has not finished yet is a
// construction cycle.
func Memo[T any](b *Builder, op, args string, fn func() (T, error)) (value T, err error) {
	key := memoKey{op: op, args: args}
	if ent, ok := b.memo[key]; ok {
		if ent.pending {
			err = ErrCycle{Op: op, Args: args}
			return
		}
		value = ent.value.(T)
		return
	}

	ent := &memoEntry{pending: true}
	b.memo[key] = ent

	value, err = fn()
	if err != nil {
		delete(b.memo, key)
		return
	}

	ent.value = value
	ent.pending = false
	return
}

// Gensym returns a fresh synthetic label name.
func (b *Builder) Gensym() string {
	b.gensym++
	return fmt.Sprintf("gen%d", b.gensym)
}

// Root returns the shared dispatch state every operation re-enters
// after updating the program counter. It stays undefined until the
// finished program is spliced onto it.
func (b *Builder) Root() tm.StateID {
	if b.root == 0 {
		b.root = b.Graph.New("!DISPATCH")
	}
	return b.root
}

// Registers returns the allocated registers in index order.
func (b *Builder) Registers() []*Register {
	return b.registers
}

// Halt returns the subprogram that stops the machine.
func (b *Builder) Halt() *Subroutine {
	return &Subroutine{Name: "halt", Entry: tm.Halt, Order: 0}
}

func (b *Builder) logf(format string, args ...any) {
	if b.Verbose {
		log.Printf(format, args...)
	}
}
