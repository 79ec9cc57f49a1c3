package core

import (
	"io/fs"
	"strings"
)

// DefaultPerm is applied when repairing permissions and creating directories.
const DefaultPerm fs.FileMode = 0o777

// BufferSize is the chunk size used when streaming file content.
const BufferSize = 4096

// PathType classifies a filesystem object as reported by lstat.
type PathType int

const (
	// PathTypeOther covers devices, sockets, pipes and anything else
	PathTypeOther PathType = iota
	// PathTypeFile represents a regular file
	PathTypeFile
	// PathTypeDir represents a directory
	PathTypeDir
	// PathTypeSymlink represents a symbolic link
	PathTypeSymlink
)

// String returns the string representation of the PathType
func (t PathType) String() string {
	switch t {
	case PathTypeFile:
		return "file"
	case PathTypeDir:
		return "directory"
	case PathTypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// PathTypeFromMode maps a file mode to its PathType.
func PathTypeFromMode(mode fs.FileMode) PathType {
	switch {
	case mode.IsRegular():
		return PathTypeFile
	case mode.IsDir():
		return PathTypeDir
	case mode&fs.ModeSymlink != 0:
		return PathTypeSymlink
	default:
		return PathTypeOther
	}
}

// AccessMode is a bitmask of access(2) checks.
type AccessMode uint32

const (
	// AccessExists only checks that the path resolves
	AccessExists AccessMode = 0
	// AccessExecute checks search/execute permission
	AccessExecute AccessMode = 1
	// AccessWrite checks write permission
	AccessWrite AccessMode = 2
	// AccessRead checks read permission
	AccessRead AccessMode = 4
)

// String returns a compact rwx form, "f" for a plain existence check.
func (m AccessMode) String() string {
	if m == AccessExists {
		return "f"
	}
	var b strings.Builder
	if m&AccessRead != 0 {
		b.WriteByte('r')
	}
	if m&AccessWrite != 0 {
		b.WriteByte('w')
	}
	if m&AccessExecute != 0 {
		b.WriteByte('x')
	}
	return b.String()
}

// WriteMode selects how a target file is opened for writing.
type WriteMode int

const (
	// WriteOverwrite truncates the target
	WriteOverwrite WriteMode = iota
	// WriteAppend appends to the target
	WriteAppend
)

// String returns the fopen-style mode letter
func (m WriteMode) String() string {
	if m == WriteAppend {
		return "a"
	}
	return "w"
}

// ParseWriteMode reads a host mode string. Only the first character counts,
// "w" for overwrite and "a" for append.
func ParseWriteMode(s string) (WriteMode, bool) {
	if s == "" {
		return 0, false
	}
	switch s[0] {
	case 'w':
		return WriteOverwrite, true
	case 'a':
		return WriteAppend, true
	}
	return 0, false
}
