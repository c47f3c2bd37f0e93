package nql

import (
	"errors"

	"github.com/ezrec/nql/translate"
)

var f = translate.From

var (
	ErrCharacter           = errors.New(f("character invalid"))
	ErrUnterminatedComment = errors.New(f("comment not terminated"))
	ErrNonAssociative      = errors.New(f("relational operators do not associate"))
	ErrBoolExpected        = errors.New(f("boolean expression expected"))
	ErrNatExpected         = errors.New(f("numeric expression expected"))
	ErrUndefinedSymbol     = errors.New(f("symbol undefined"))
)

type ErrSyntax struct {
	Line int
	Err  error
}

func (err ErrSyntax) Error() string {
	return f("line %d: %v", err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrToken struct {
	Line int
	Got  string
	Want string
}

func (err ErrToken) Error() string {
	return f("line %d: found '%v', expected %v", err.Line, err.Got, err.Want)
}

func (err ErrToken) Is(target error) (ok bool) {
	_, ok = target.(ErrToken)
	return
}

// ErrSymbol reports a reference to an undeclared global or procedure.
type ErrSymbol struct {
	Line int
	Name string
}

func (err ErrSymbol) Error() string {
	return f("line %d: symbol %v undefined", err.Line, err.Name)
}

func (err ErrSymbol) Unwrap() error {
	return ErrUndefinedSymbol
}

// ErrArity reports a call with the wrong number of arguments.
type ErrArity struct {
	Line int
	Proc string
	Want int
	Got  int
}

func (err ErrArity) Error() string {
	return f("line %d: %v takes %v arguments, got %v", err.Line, err.Proc, err.Want, err.Got)
}

func (err ErrArity) Is(target error) (ok bool) {
	_, ok = target.(ErrArity)
	return
}
