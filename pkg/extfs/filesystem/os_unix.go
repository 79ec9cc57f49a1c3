//go:build unix

package filesystem

import (
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// Access implements PathFS with access(2), checked against the real uid.
func (osfs *OSFileSystem) Access(name string, mode core.AccessMode) error {
	path := osfs.resolve(name)
	if err := unix.Access(path, uint32(mode)); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}
	return nil
}

// RemoveFile implements DirFS with unlink(2).
func (osfs *OSFileSystem) RemoveFile(name string) error {
	path := osfs.resolve(name)
	if err := unix.Unlink(path); err != nil {
		return &fs.PathError{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

// RemoveDir implements DirFS with rmdir(2).
func (osfs *OSFileSystem) RemoveDir(name string) error {
	path := osfs.resolve(name)
	if err := unix.Rmdir(path); err != nil {
		return &fs.PathError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}
