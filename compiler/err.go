package compiler

import (
	"errors"

	"github.com/ezrec/nql/translate"
)

var f = translate.From

var (
	ErrUnresolvedLabel = errors.New(f("label unresolved"))
	ErrEmptySubprogram = errors.New(f("subprogram empty"))
)

// ErrCycle reports a self-referential construction: a memoized
// operation re-entered while still being built.
type ErrCycle struct {
	Op   string
	Args string
}

func (err ErrCycle) Error() string {
	return f("cycle constructing %v(%v)", err.Op, err.Args)
}

func (err ErrCycle) Is(target error) (ok bool) {
	_, ok = target.(ErrCycle)
	return
}

type ErrLabel struct {
	Sub   string
	Label string
	Err   error
}

func (err ErrLabel) Error() string {
	return f("%v: label %v: %v", err.Sub, err.Label, err.Err)
}

func (err ErrLabel) Unwrap() error {
	return err.Err
}

type ErrSub struct {
	Sub string
	Err error
}

func (err ErrSub) Error() string {
	return f("%v: %v", err.Sub, err.Err)
}

func (err ErrSub) Unwrap() error {
	return err.Err
}
