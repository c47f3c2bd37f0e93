package tm

import (
	"errors"

	"github.com/ezrec/nql/translate"
)

var f = translate.From

var (
	ErrRedefinition      = errors.New(f("state redefined"))
	ErrInvalidTransition = errors.New(f("transition invalid"))
	ErrUndefined         = errors.New(f("state undefined"))
	ErrStateInvalid      = errors.New(f("state id invalid"))
)

type ErrState struct {
	Name string
	Err  error
}

func (err ErrState) Error() string {
	return f("state %v: %v", err.Name, err.Err)
}

func (err ErrState) Unwrap() error {
	return err.Err
}
