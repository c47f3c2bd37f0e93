package compiler

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/ezrec/nql/tm"
)

// shortBranchBits is the widest dedicated branch patch worth building
// instead of sharing the full-order patch for the target.
const shortBranchBits = 2

// Makesub lays out parts into a power-of-two subprogram and compiles
// its dispatch tree. Identical part lists share one Subroutine.
func (b *Builder) Makesub(name string, parts ...Part) (*Subroutine, error) {
	return Memo(b, "makesub", partsKey(name, parts), func() (*Subroutine, error) {
		return b.makesub(name, parts)
	})
}

func partsKey(name string, parts []Part) string {
	var key strings.Builder
	key.WriteString(name)
	for _, part := range parts {
		switch p := part.(type) {
		case Label:
			fmt.Fprintf(&key, ";L%s", string(p))
		case Goto:
			fmt.Fprintf(&key, ";G%s", string(p))
		case *Subroutine:
			fmt.Fprintf(&key, ";S%d/%d", p.Entry, p.Order)
		}
	}
	return key.String()
}

type slot struct {
	offset int
	sub    *Subroutine
}

type gotoRef struct {
	offset int
	target string
	index  int // slot to fill after resolution
}

func (b *Builder) makesub(name string, parts []Part) (sub *Subroutine, err error) {
	if !b.NoCFGOpt {
		parts = threadGotos(parts)
	}

	labels := map[string]int{}
	var slots []slot
	var gotos []gotoRef
	offset := 0

	// Pad with the largest noop the current offset permits until the
	// alignment holds; each noop raises the offset's trailing zero
	// count, so this terminates.
	pad := func(align int) error {
		for offset%align != 0 {
			noop, nerr := b.Noop(bits.TrailingZeros(uint(offset)))
			if nerr != nil {
				return nerr
			}
			slots = append(slots, slot{offset: offset, sub: noop})
			offset += 1 << noop.Order
		}
		return nil
	}

	for _, part := range parts {
		switch p := part.(type) {
		case Label:
			labels[string(p)] = offset
		case Goto:
			gotos = append(gotos, gotoRef{offset: offset, target: string(p), index: len(slots)})
			slots = append(slots, slot{offset: offset})
			offset++
		case *Subroutine:
			err = pad(1 << p.Order)
			if err != nil {
				return
			}
			slots = append(slots, slot{offset: offset, sub: p})
			offset += 1 << p.Order
		}
	}

	if offset == 0 {
		err = ErrSub{Sub: name, Err: ErrEmptySubprogram}
		return
	}

	order := bits.Len(uint(offset - 1))
	size := 1 << order
	err = pad(size)
	if err != nil {
		return
	}

	for _, ref := range gotos {
		target, ok := labels[ref.target]
		if !ok {
			err = ErrLabel{Sub: name, Label: ref.target, Err: ErrUnresolvedLabel}
			return
		}

		var patch *Subroutine
		if b.BranchAdder {
			delta := (target - ref.offset) & (size - 1)
			patch, err = b.adder(bitsLSB(delta, order))
		} else {
			width := 0
			for ref.offset>>width != target>>width {
				width++
			}
			if width > shortBranchBits {
				// share the full-order patch for this target
				width = order
			}
			patch, err = b.jump(bitsLSB(target, width))
		}
		if err != nil {
			return
		}
		slots[ref.index].sub = patch
	}

	children := make([]Child, 0, len(slots))
	entries := make([]dispEntry, 0, len(slots))
	for _, s := range slots {
		prefix := bitsMSB(s.offset>>s.sub.Order, order-s.sub.Order)
		children = append(children, Child{Prefix: prefix, Sub: s.sub})
		entries = append(entries, dispEntry{prefix: prefix, entry: s.sub.Entry})
	}

	entry, err := b.dispatcher(name, "", order, entries)
	if err != nil {
		return
	}

	b.logf("makesub %v: order %v, %v parts", name, order, len(slots))
	sub = &Subroutine{Name: name, Entry: entry, Order: order, Children: children}
	return
}

// threadGotos collapses goto-to-goto chains onto their ultimate label
// and drops a goto whose target is the part that already follows it.
// A goto right after a decrement is that operation's failure slot and
// always survives. One pass; dead code is left alone.
func threadGotos(parts []Part) (out []Part) {
	labelAt := map[string]int{}
	for i, part := range parts {
		if l, ok := part.(Label); ok {
			labelAt[string(l)] = i
		}
	}

	nextReal := func(from int) int {
		for ; from < len(parts); from++ {
			if _, ok := parts[from].(Label); !ok {
				return from
			}
		}
		return len(parts)
	}

	ultimate := func(target string) string {
		seen := map[string]bool{}
		for {
			at, ok := labelAt[target]
			if !ok || seen[target] {
				return target
			}
			seen[target] = true
			real := nextReal(at + 1)
			if real < len(parts) {
				if g, ok := parts[real].(Goto); ok {
					target = string(g)
					continue
				}
			}
			return target
		}
	}

	out = make([]Part, 0, len(parts))
	for i, part := range parts {
		g, ok := part.(Goto)
		if !ok {
			out = append(out, part)
			continue
		}

		target := ultimate(string(g))
		if at, ok := labelAt[target]; ok && nextReal(at+1) == nextReal(i+1) {
			keep := false
			for j := i - 1; j >= 0; j-- {
				if _, isLabel := parts[j].(Label); isLabel {
					continue
				}
				if s, isSub := parts[j].(*Subroutine); isSub && s.IsDecrement {
					keep = true
				}
				break
			}
			if !keep {
				continue
			}
		}
		out = append(out, Goto(target))
	}
	return
}

type dispEntry struct {
	prefix string
	entry  tm.StateID
}

// dispatcher builds the binary decision tree over the remaining
// counter bits. Nodes are shared between layouts with the same name,
// remaining order, and relative child map.
func (b *Builder) dispatcher(name, prefix string, order int, entries []dispEntry) (tm.StateID, error) {
	if len(entries) == 0 {
		// alignment keeps every prefix covered
		return tm.Halt, nil
	}
	if len(entries) == 1 && entries[0].prefix == "" {
		return entries[0].entry, nil
	}

	var key strings.Builder
	fmt.Fprintf(&key, "%s/%d", name, order)
	for _, e := range entries {
		fmt.Fprintf(&key, ";%s=%d", e.prefix, e.entry)
	}

	return Memo(b, "dispatch", key.String(), func() (id tm.StateID, err error) {
		var zero, one []dispEntry
		for _, e := range entries {
			rest := dispEntry{prefix: e.prefix[1:], entry: e.entry}
			if e.prefix[0] == '0' {
				zero = append(zero, rest)
			} else {
				one = append(one, rest)
			}
		}

		next0, err := b.dispatcher(name, prefix+"0", order-1, zero)
		if err != nil {
			return
		}
		next1, err := b.dispatcher(name, prefix+"1", order-1, one)
		if err != nil {
			return
		}

		id = b.Graph.New(fmt.Sprintf("%s[%s]", name, prefix))
		err = b.Graph.Define(id, tm.Def{Move: tm.MOVE_RIGHT, Next0: next0, Next1: next1})
		return
	})
}
