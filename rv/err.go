package rv

import (
	"errors"

	"github.com/ezrec/rvgold/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelAddress   = errors.New(f("label address differs between passes"))
	ErrOperandMissing = errors.New(f("operand missing"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber is a malformed immediate, or a branch target that is
// neither a known label nor an integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
