// Package io provides the output file systems for generated memory
// initialisation files, including an atomic staging directory so that a
// failed run never leaves partially written outputs behind.
package io

import (
	"bufio"
	"io"
)

// CreateFS defines a file system interface that supports creating files.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// WriteFile creates name on filesys and writes src into it.
func WriteFile(filesys CreateFS, name string, src io.WriterTo) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	buff := bufio.NewWriter(file)
	_, err = src.WriteTo(buff)
	if err != nil {
		return
	}

	err = buff.Flush()

	return
}
