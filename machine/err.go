package machine

import (
	"github.com/ezrec/nql/translate"
)

var f = translate.From

// ErrSizeMismatch reports a rebuild whose boot subprogram order did
// not land on the program counter width learned from the first pass.
type ErrSizeMismatch struct {
	Want int
	Got  int
}

func (err ErrSizeMismatch) Error() string {
	return f("rebuilt order %v does not match counter width %v", err.Got, err.Want)
}

func (err ErrSizeMismatch) Is(target error) (ok bool) {
	_, ok = target.(ErrSizeMismatch)
	return
}
