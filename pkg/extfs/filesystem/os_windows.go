//go:build windows

package filesystem

import (
	"io/fs"
	"os"

	"golang.org/x/sys/windows"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// Access implements PathFS. Windows only tracks the read-only attribute, so a
// write check fails on read-only files and execute checks are rejected.
func (osfs *OSFileSystem) Access(name string, mode core.AccessMode) error {
	path := osfs.resolve(name)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode&core.AccessExecute != 0 {
		return &fs.PathError{Op: "access", Path: path, Err: fs.ErrInvalid}
	}
	if mode&core.AccessWrite != 0 && info.Mode().Perm()&0o200 == 0 {
		return &fs.PathError{Op: "access", Path: path, Err: fs.ErrPermission}
	}
	return nil
}

// RemoveFile implements DirFS with DeleteFile. Directory symlinks and
// junctions are reparse points carrying the directory attribute; they are
// removed with RemoveDirectory, which deletes the link and not its target.
func (osfs *OSFileSystem) RemoveFile(name string) error {
	path := osfs.resolve(name)
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &fs.PathError{Op: "deletefile", Path: path, Err: err}
	}
	const dirLink = windows.FILE_ATTRIBUTE_DIRECTORY | windows.FILE_ATTRIBUTE_REPARSE_POINT
	if attrs, err := windows.GetFileAttributes(p); err == nil && attrs&dirLink == dirLink {
		if err := windows.RemoveDirectory(p); err != nil {
			return &fs.PathError{Op: "removedirectory", Path: path, Err: err}
		}
		return nil
	}
	if err := windows.DeleteFile(p); err != nil {
		return &fs.PathError{Op: "deletefile", Path: path, Err: err}
	}
	return nil
}

// RemoveDir implements DirFS with RemoveDirectory.
func (osfs *OSFileSystem) RemoveDir(name string) error {
	path := osfs.resolve(name)
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &fs.PathError{Op: "removedirectory", Path: path, Err: err}
	}
	if err := windows.RemoveDirectory(p); err != nil {
		return &fs.PathError{Op: "removedirectory", Path: path, Err: err}
	}
	return nil
}
