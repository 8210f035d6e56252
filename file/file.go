// Package file wraps the host's filesystem table. Paths are relative to the
// game's data directory (and, for reads, its pdx image), use forward slashes
// and are UTF-8 throughout.
package file

import (
	"io"

	"github.com/pdxgo/playdate/host"
)

// FS is the filesystem API surface. One instance exists per process.
type FS struct {
	h host.File
}

func New(h host.File) *FS {
	return &FS{h: h}
}

// Open opens the file at path. Mode selects whether reads may come from the
// pdx image and whether the file is truncated or appended to for writing.
func (fs *FS) Open(path string, mode host.OpenMode) (*File, error) {
	ref, err := fs.h.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return &File{h: fs.h, ref: ref, name: path}, nil
}

// ReadFile reads the whole file at path.
func (fs *FS) ReadFile(path string) ([]byte, error) {
	f, err := fs.Open(path, host.ModeRead)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile replaces the file at path with data.
func (fs *FS) WriteFile(path string, data []byte) error {
	f, err := fs.Open(path, host.ModeWrite)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Stat describes the file at path.
func (fs *FS) Stat(path string) (host.FileStat, error) {
	return fs.h.Stat(path)
}

// Mkdir creates the directory at path, including missing parents.
func (fs *FS) Mkdir(path string) error {
	return fs.h.Mkdir(path)
}

// Rename moves the file at from to to, overwriting any existing file.
func (fs *FS) Rename(from, to string) error {
	return fs.h.Rename(from, to)
}

// Delete removes the file at path. Directories are only removed when
// recursive is set.
func (fs *FS) Delete(path string, recursive bool) error {
	return fs.h.Delete(path, recursive)
}

// List returns the names of the entries in the directory at path.
func (fs *FS) List(path string) ([]string, error) {
	return fs.h.List(path)
}

// File is an open file. It implements io.Reader, io.Writer, io.Seeker and
// io.Closer over the host's file handle.
type File struct {
	h    host.File
	ref  host.FileRef
	name string
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

func (f *File) Read(p []byte) (int, error) {
	return f.h.Read(f.ref, p)
}

func (f *File) Write(p []byte) (int, error) {
	return f.h.Write(f.ref, p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.h.Seek(f.ref, offset, whence)
}

func (f *File) Close() error {
	if f.ref == 0 {
		return nil
	}
	err := f.h.Close(f.ref)
	f.ref = 0
	return err
}

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
)
