package extfs

import (
	"io/fs"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// CheckAccess succeeds when the OS grants mode on path to the caller.
func (e *ExtFS) CheckAccess(path string, mode AccessMode) error {
	if err := e.fs.Access(path, mode); err != nil {
		return e.fail("access", core.NewError(core.KindAccess, core.SiteAccess, path, err))
	}
	return nil
}

// SetPermissions changes the permission bits of path.
func (e *ExtFS) SetPermissions(path string, perm fs.FileMode) error {
	if err := e.fs.Chmod(path, perm); err != nil {
		return e.fail("chmod", core.NewError(core.KindPermission, core.SiteChmod, path, err))
	}
	return nil
}

// GetPathType reports what kind of object path is. Symlinks are not followed.
func (e *ExtFS) GetPathType(path string) (PathType, error) {
	info, err := e.fs.Lstat(path)
	if err != nil {
		return PathTypeOther, e.fail("type", core.NewError(core.KindStat, core.SiteTypeStat, path, err))
	}
	return core.PathTypeFromMode(info.Mode()), nil
}

// GetPathSize returns the size of path as reported by stat, following a
// symlink to its target.
func (e *ExtFS) GetPathSize(path string) (int64, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return 0, e.fail("size", core.NewError(core.KindStat, core.SiteSizeStat, path, err))
	}
	return info.Size(), nil
}

// PathExists succeeds when path resolves.
func (e *ExtFS) PathExists(path string) error {
	return e.CheckAccess(path, AccessExists)
}

// EnsureReadWritable succeeds when path is readable and writable, applying
// DefaultPerm first if an existing path is not.
func (e *ExtFS) EnsureReadWritable(path string) error {
	if err := e.fs.Access(path, AccessRead|AccessWrite); err == nil {
		return nil
	}
	if err := e.fs.Access(path, AccessExists); err != nil {
		return e.fail("readwritable", core.NewError(core.KindAccess, core.SiteReadWritableMissing, path, err))
	}
	if err := e.fs.Chmod(path, DefaultPerm); err != nil {
		return e.fail("readwritable", core.NewError(core.KindPermission, core.SiteReadWritableRepair, path, err))
	}
	if err := e.fs.Access(path, AccessRead|AccessWrite); err != nil {
		return e.fail("readwritable", core.NewError(core.KindAccess, core.SiteReadWritableDenied, path, err))
	}
	e.logger.Info().Str("path", path).Msg("repaired permissions")
	return nil
}

// repairReadable applies DefaultPerm to a path that is not readable.
func (e *ExtFS) repairReadable(path string) error {
	if e.fs.Access(path, AccessRead) == nil {
		return nil
	}
	return e.fs.Chmod(path, DefaultPerm)
}

// repairWritable applies DefaultPerm to an existing path that is not writable.
// Missing paths are left alone; they get created on open.
func (e *ExtFS) repairWritable(path string) error {
	if e.fs.Access(path, AccessExists) != nil {
		return nil
	}
	if e.fs.Access(path, AccessWrite) == nil {
		return nil
	}
	return e.fs.Chmod(path, DefaultPerm)
}
