package dsl

import (
	"errors"

	"github.com/ezrec/nql/translate"
)

var f = translate.From

var (
	ErrNatValue  = errors.New(f("numeric expression expected"))
	ErrBoolValue = errors.New(f("boolean expression expected"))
	ErrStmtValue = errors.New(f("statement expected"))
	ErrNameValue = errors.New(f("name string expected"))
	ErrDuplicate = errors.New(f("name already defined"))
)

// ErrBuiltin reports a bad argument to one of the predeclared
// builtins.
type ErrBuiltin struct {
	Builtin string
	Err     error
}

func (err ErrBuiltin) Error() string {
	return f("%v: %v", err.Builtin, err.Err)
}

func (err ErrBuiltin) Unwrap() error {
	return err.Err
}
