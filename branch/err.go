package branch

import (
	"github.com/ezrec/rvgold/translate"
)

var f = translate.From

// ErrTrace indicates the location of a trace parse error.
type ErrTrace struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrTrace) Error() string {
	return f("trace line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrTrace) Unwrap() error {
	return err.Err
}

type ErrParseHex string

func (err ErrParseHex) Error() string {
	return f("'%v' is not a 32-bit hex value", string(err))
}

type ErrParseTaken string

func (err ErrParseTaken) Error() string {
	return f("'%v' is not a taken flag", string(err))
}
