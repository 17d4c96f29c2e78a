package io

import (
	"bytes"
	"io"
)

// MemFS is an in-memory CreateFS. It is not safe for concurrent use.
type MemFS map[string]*bytes.Buffer

var _ CreateFS = MemFS(nil)

type memFile struct {
	*bytes.Buffer
}

func (mf memFile) Close() error {
	return nil
}

// Create creates or truncates an in-memory file.
func (mfs MemFS) Create(name string) (file io.WriteCloser, err error) {
	buff := &bytes.Buffer{}
	mfs[name] = buff
	file = memFile{buff}

	return
}
