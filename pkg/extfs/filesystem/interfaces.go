package filesystem

import (
	"io"
	"io/fs"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// File is an open file handle as returned by Open and OpenFile.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// PathFS covers the single-path primitives.
type PathFS interface {
	Access(name string, mode core.AccessMode) error
	Chmod(name string, perm fs.FileMode) error
	Lstat(name string) (fs.FileInfo, error)
	// Stat follows a final symlink.
	Stat(name string) (fs.FileInfo, error)
}

// DirFS covers directory listing and structural changes.
type DirFS interface {
	// ReadDir lists a directory; self and parent entries are never returned.
	ReadDir(name string) ([]fs.DirEntry, error)
	Mkdir(name string, perm fs.FileMode) error
	RemoveDir(name string) error
	RemoveFile(name string) error
	Rename(oldpath, newpath string) error
}

// OpenFS covers file handles.
type OpenFS interface {
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
}

// FileSystem is the platform capability set every operation is built from.
type FileSystem interface {
	PathFS
	DirFS
	OpenFS
}
