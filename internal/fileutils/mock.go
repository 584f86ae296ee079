package fileutils

import (
	"os"

	"github.com/spf13/afero"
)

// FaultyFs wraps an afero.Fs and lets tests fail individual operations.
// A nil hook passes the call through to the wrapped filesystem.
type FaultyFs struct {
	afero.Fs

	OpenErr     func(name string) error
	OpenFileErr func(name string, flag int) error
	RenameErr   func(oldname, newname string) error
	RemoveErr   func(name string) error
}

// NewFaultyFs wraps base, which defaults to an in-memory filesystem.
func NewFaultyFs(base afero.Fs) *FaultyFs {
	if base == nil {
		base = afero.NewMemMapFs()
	}
	return &FaultyFs{Fs: base}
}

func (f *FaultyFs) Open(name string) (afero.File, error) {
	if f.OpenErr != nil {
		if err := f.OpenErr(name); err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
	}
	return f.Fs.Open(name)
}

func (f *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.OpenFileErr != nil {
		if err := f.OpenFileErr(name, flag); err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FaultyFs) Rename(oldname, newname string) error {
	if f.RenameErr != nil {
		if err := f.RenameErr(oldname, newname); err != nil {
			return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
		}
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *FaultyFs) Remove(name string) error {
	if f.RemoveErr != nil {
		if err := f.RemoveErr(name); err != nil {
			return &os.PathError{Op: "remove", Path: name, Err: err}
		}
	}
	return f.Fs.Remove(name)
}
