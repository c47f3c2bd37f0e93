package compiler

import (
	"strings"
)

// Transfer zeroes source, adding its former value to every target
// register. With no targets it is a plain zeroing loop. The compiled
// size is proportional to the target count; the runtime cost is
// proportional to the value moved.
func (b *Builder) Transfer(source *Register, targets ...*Register) (*Subroutine, error) {
	names := make([]string, 0, len(targets)+1)
	names = append(names, source.Name)
	for _, target := range targets {
		names = append(names, target.Name)
	}
	key := strings.Join(names, ",")

	return Memo(b, "transfer", key, func() (*Subroutine, error) {
		noop, err := b.Noop(0)
		if err != nil {
			return nil, err
		}

		parts := []Part{Label("again"), source.Dec, Goto("zero")}
		for _, target := range targets {
			parts = append(parts, target.Inc)
		}
		parts = append(parts, Goto("again"), Label("zero"), noop)

		return b.Makesub("transfer("+key+")", parts...)
	})
}
