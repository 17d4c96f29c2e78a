package io

import (
	"errors"

	"github.com/ezrec/rvgold/translate"
)

var f = translate.From

var (
	// Stage errors
	ErrStageClosed = errors.New(f("stage already committed or aborted"))
)

type ErrStageDuplicate string

func (err ErrStageDuplicate) Error() string {
	return f("'%v' staged twice", string(err))
}
