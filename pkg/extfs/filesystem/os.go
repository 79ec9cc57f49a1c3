package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystem on top of the host OS. When root is set,
// relative names are resolved under it; absolute names are always used as
// given.
type OSFileSystem struct {
	root string
}

// NewOSFileSystem creates a new OS-based filesystem rooted at the given path.
// An empty root leaves names untouched.
func NewOSFileSystem(root string) *OSFileSystem {
	return &OSFileSystem{root: root}
}

// Root returns the directory relative names are resolved against.
func (osfs *OSFileSystem) Root() string {
	return osfs.root
}

func (osfs *OSFileSystem) resolve(name string) string {
	if osfs.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(osfs.root, name)
}

// Chmod implements PathFS
func (osfs *OSFileSystem) Chmod(name string, perm fs.FileMode) error {
	return os.Chmod(osfs.resolve(name), perm)
}

// Lstat implements PathFS
func (osfs *OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(osfs.resolve(name))
}

// Stat implements PathFS
func (osfs *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(osfs.resolve(name))
}

// ReadDir implements DirFS
func (osfs *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(osfs.resolve(name))
}

// Mkdir implements DirFS
func (osfs *OSFileSystem) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(osfs.resolve(name), perm)
}

// Rename implements DirFS
func (osfs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(osfs.resolve(oldpath), osfs.resolve(newpath))
}

// Open implements OpenFS
func (osfs *OSFileSystem) Open(name string) (File, error) {
	f, err := os.Open(osfs.resolve(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// OpenFile implements OpenFS
func (osfs *OSFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	f, err := os.OpenFile(osfs.resolve(name), flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}
