package tm

import (
	"fmt"
	"io"
	"sort"
)

// Reachable returns every state reachable from entry, in a
// deterministic depth-first order that explores the zero branch
// first. Halt is not listed.
func (g *Graph) Reachable(entry StateID) (ids []StateID, err error) {
	if entry == Halt {
		return
	}

	visited := map[StateID]bool{}
	stack := []StateID{entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == Halt || visited[id] {
			continue
		}
		visited[id] = true
		ids = append(ids, id)

		t, terr := g.Transitions(id)
		if terr != nil {
			err = terr
			return
		}
		stack = append(stack, t[1].Next, t[0].Next)
	}

	return
}

// Compress merges states with identical transition functions until no
// duplicates remain, and returns the surviving entry state. Names are
// ignored; the first state of each class keeps its own.
func (g *Graph) Compress(entry StateID) (compressed StateID, err error) {
	compressed = entry

	for {
		ids, rerr := g.Reachable(compressed)
		if rerr != nil {
			err = rerr
			return
		}

		classes := map[[2]Transition]StateID{}
		remap := map[StateID]StateID{}
		for _, id := range ids {
			t, _ := g.Transitions(id)
			if rep, ok := classes[t]; ok {
				remap[id] = rep
			} else {
				classes[t] = id
			}
		}
		if len(remap) == 0 {
			return
		}

		redirect := func(id StateID) StateID {
			if rep, ok := remap[id]; ok {
				return rep
			}
			return id
		}
		for _, id := range ids {
			if _, dead := remap[id]; dead {
				continue
			}
			st := &g.states[id-1]
			st.t[0].Next = redirect(st.t[0].Next)
			st.t[1].Next = redirect(st.t[1].Next)
		}
		compressed = redirect(compressed)
	}
}

// Print writes the transition table of every state reachable from
// entry, one line per state sorted by name:
//
//	NAME = w0 d0 next0 w1 d1 next1
func (g *Graph) Print(w io.Writer, entry StateID) (err error) {
	ids, err := g.Reachable(entry)
	if err != nil {
		return
	}

	sort.Slice(ids, func(i, j int) bool {
		ni, nj := g.Name(ids[i]), g.Name(ids[j])
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		t, _ := g.Transitions(id)
		_, err = fmt.Fprintf(w, "%s = %c %v %s %c %v %s\n", g.Name(id),
			t[0].Write, t[0].Move, g.Name(t[0].Next),
			t[1].Write, t[1].Move, g.Name(t[1].Next))
		if err != nil {
			return
		}
	}

	return
}
