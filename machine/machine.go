// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/ezrec/nql/compiler"
	"github.com/ezrec/nql/tm"
)

// speculativePCBits is the counter width of the sizing pass. Any
// program small enough to finish compiling fits well inside it.
const speculativePCBits = 50

// BuildFunc constructs a program against a builder and returns its
// top-level subprogram.
type BuildFunc func(*compiler.Builder) (*compiler.Subroutine, error)

// Options configures compilation.
type Options struct {
	BranchAdder bool // resolve branches with relative adders
	NoCFGOpt    bool // disable goto threading
	Verbose     bool
}

// Machine is a fully compiled Turing machine.
type Machine struct {
	Graph   *tm.Graph
	Builder *compiler.Builder
	Boot    *compiler.Subroutine
	Entry   tm.StateID
	PCBits  int
	Verbose bool
}

// New compiles build twice: a sizing pass against a speculative
// counter width, then the real pass at the exact width.
func New(build BuildFunc, opts *Options) (m *Machine, err error) {
	if opts == nil {
		opts = &Options{}
	}

	sized, err := buildPass(build, speculativePCBits, opts)
	if err != nil {
		return
	}
	order := sized.Boot.Order

	m, err = buildPass(build, order, opts)
	if err != nil {
		return
	}
	if m.Boot.Order != order {
		err = ErrSizeMismatch{Want: order, Got: m.Boot.Order}
		m = nil
		return
	}

	if opts.Verbose {
		log.Printf("machine: %v counter bits, %v states", m.PCBits, m.Graph.Len())
	}
	return
}

func buildPass(build BuildFunc, pcBits int, opts *Options) (m *Machine, err error) {
	g := tm.NewGraph()
	b := compiler.NewBuilder(g, pcBits)
	b.BranchAdder = opts.BranchAdder
	b.NoCFGOpt = opts.NoCFGOpt
	b.Verbose = opts.Verbose

	main, err := build(b)
	if err != nil {
		return
	}

	// Registers must be marked occupied in index order before the
	// program body touches them.
	parts := []compiler.Part{}
	for _, reg := range b.Registers() {
		parts = append(parts, reg.Init)
	}
	parts = append(parts, main, b.Halt())

	boot, err := b.Makesub("boot", parts...)
	if err != nil {
		return
	}

	err = g.Clone(b.Root(), boot.Entry)
	if err != nil {
		return
	}
	entry, err := b.EntryState()
	if err != nil {
		return
	}

	m = &Machine{
		Graph:   g,
		Builder: b,
		Boot:    boot,
		Entry:   entry,
		PCBits:  pcBits,
		Verbose: opts.Verbose,
	}
	return
}

// Compress merges duplicate states and moves the entry to its
// surviving representative.
func (m *Machine) Compress() (err error) {
	m.Entry, err = m.Graph.Compress(m.Entry)
	return
}

// States returns the number of reachable states.
func (m *Machine) States() (count int, err error) {
	ids, err := m.Graph.Reachable(m.Entry)
	if err != nil {
		return
	}
	count = len(ids)
	return
}

// Print writes the reachable transition table.
func (m *Machine) Print(w io.Writer) error {
	return m.Graph.Print(w, m.Entry)
}

// PrintSubs writes the subprogram tree of the boot dispatcher. Shared
// subprograms are expanded once.
func (m *Machine) PrintSubs(w io.Writer) (err error) {
	seen := map[*compiler.Subroutine]bool{}

	var walk func(sub *compiler.Subroutine, prefix, indent string) error
	walk = func(sub *compiler.Subroutine, prefix, indent string) error {
		tag := ""
		if prefix != "" {
			tag = prefix + ": "
		}
		if seen[sub] && len(sub.Children) > 0 {
			_, werr := fmt.Fprintf(w, "%s%s%s/%d ...\n", indent, tag, sub.Name, sub.Order)
			return werr
		}
		seen[sub] = true
		_, werr := fmt.Fprintf(w, "%s%s%s/%d\n", indent, tag, sub.Name, sub.Order)
		if werr != nil {
			return werr
		}
		for _, child := range sub.Children {
			werr = walk(child.Sub, child.Prefix, indent+"  ")
			if werr != nil {
				return werr
			}
		}
		return nil
	}

	return walk(m.Boot, "", "")
}

// RegisterValues decodes the register area of the simulator tape.
func (m *Machine) RegisterValues(s *Simulator) map[string]int {
	values := map[string]int{}
	pos := m.PCBits + 2
	for _, reg := range m.Builder.Registers() {
		count := 0
		for s.Cell(pos) == tm.SYMBOL_ONE {
			count++
			pos++
		}
		pos++
		if count > 0 {
			// drop the occupancy mark
			count--
		}
		values[reg.Name] = count
	}
	return values
}

// DumpRegisters formats the register values, sorted by name.
func (m *Machine) DumpRegisters(s *Simulator) string {
	values := m.RegisterValues(s)
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s=%d", name, values[name]))
	}
	return strings.Join(out, " ")
}
