package golden

import (
	"errors"

	"github.com/ezrec/rvgold/translate"
)

var f = translate.From

var (
	// Job errors
	ErrAssemblyMissing = errors.New(f("no assembly source"))
)

// ErrJob indicates which job failed.
type ErrJob struct {
	Name string
	Err  error
}

func (err *ErrJob) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrJob) Unwrap() error {
	return err.Err
}

type ErrOutputDuplicate string

func (err ErrOutputDuplicate) Error() string {
	return f("output '%v' written by more than one job", string(err))
}
