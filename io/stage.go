package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Stage is a directory backed CreateFS whose files only appear under their
// final names on Commit. Until then each file is written to a hidden
// temporary file next to its destination.
type Stage struct {
	Dir string // Destination directory.

	pending []stagedFile
	closed  bool
}

type stagedFile struct {
	temp  string
	final string
}

var _ CreateFS = (*Stage)(nil)

// NewStage creates a stage for the destination directory dir.
func NewStage(dir string) *Stage {
	return &Stage{Dir: dir}
}

// Create creates a temporary file that will be renamed to name on Commit.
// Relative names are relative to the stage directory. Missing parent
// directories are created, and are left in place by Abort.
func (st *Stage) Create(name string) (file io.WriteCloser, err error) {
	if st.closed {
		err = ErrStageClosed
		return
	}

	final := name
	if !filepath.IsAbs(final) {
		final = filepath.Join(st.Dir, name)
	}
	for _, staged := range st.pending {
		if staged.final == final {
			err = ErrStageDuplicate(name)
			return
		}
	}

	err = os.MkdirAll(filepath.Dir(final), 0755)
	if err != nil {
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(final), "."+filepath.Base(final)+".*")
	if err != nil {
		return
	}

	err = tmp.Chmod(0644)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return
	}

	st.pending = append(st.pending, stagedFile{temp: tmp.Name(), final: final})
	file = tmp

	return
}

// Names returns the destination paths of all staged files.
func (st *Stage) Names() (names []string) {
	for _, staged := range st.pending {
		names = append(names, staged.final)
	}

	return
}

// Commit renames every staged file to its destination. All files written
// through Create must be closed first.
func (st *Stage) Commit() (err error) {
	if st.closed {
		err = ErrStageClosed
		return
	}
	st.closed = true

	for n, staged := range st.pending {
		err = os.Rename(staged.temp, staged.final)
		if err != nil {
			for _, rest := range st.pending[n:] {
				os.Remove(rest.temp)
			}
			return
		}
	}

	return
}

// Abort removes every staged file. Aborting a committed stage is a no-op.
func (st *Stage) Abort() (err error) {
	if st.closed {
		return
	}
	st.closed = true

	var errs []error
	for _, staged := range st.pending {
		rerr := os.Remove(staged.temp)
		if rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			errs = append(errs, rerr)
		}
	}

	err = errors.Join(errs...)

	return
}
