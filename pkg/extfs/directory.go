package extfs

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// MakeDirectory creates path with DefaultPerm. An existing path is accepted,
// and DefaultPerm is applied either way so the umask and any earlier mode do
// not stick.
func (e *ExtFS) MakeDirectory(path string) error {
	e.logger.Debug().Str("path", path).Msg("make directory")

	if err := e.fs.Mkdir(path, DefaultPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		return e.fail("mkdir", core.NewError(core.KindCreate, core.SiteMkdir, path, err))
	}
	if err := e.fs.Chmod(path, DefaultPerm); err != nil {
		return e.fail("mkdir", core.NewError(core.KindPermission, core.SiteMkdirChmod, path, err))
	}
	return nil
}

// MoveDirectory renames source to target. Cross-device moves fail; nothing is
// copied.
func (e *ExtFS) MoveDirectory(source, target string) error {
	e.logger.Debug().Str("source", source).Str("target", target).Msg("move directory")

	if err := e.fs.Rename(source, target); err != nil {
		return e.fail("move", core.NewError(core.KindRename, core.SiteRename, source, err))
	}
	return nil
}

// removeFrame is a directory whose entries are being removed.
type removeFrame struct {
	path    string
	entries []fs.DirEntry
	next    int
}

// RemoveDirectoryRecursive removes path and everything below it. A missing
// path is a no-op. Symlinks are unlinked, never followed. The first failure
// stops the removal; whatever was already removed stays removed.
func (e *ExtFS) RemoveDirectoryRecursive(path string) error {
	e.logger.Debug().Str("path", path).Msg("remove directory")

	info, err := e.fs.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return e.fail("remove", core.NewError(core.KindStat, core.SiteRemoveStat, path, err))
	}
	if !info.IsDir() {
		return e.removeFile(path)
	}

	root, err := e.openFrame(path)
	if err != nil {
		return err
	}
	stack := []*removeFrame{root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			if err := e.fs.RemoveDir(top.path); err != nil {
				return e.fail("remove", core.NewError(core.KindRemove, core.SiteRemoveDir, top.path, err))
			}
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++
		child := filepath.Join(top.path, entry.Name())

		if entry.IsDir() {
			frame, err := e.openFrame(child)
			if err != nil {
				return err
			}
			stack = append(stack, frame)
			continue
		}
		if err := e.removeFile(child); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExtFS) openFrame(path string) (*removeFrame, error) {
	entries, err := e.fs.ReadDir(path)
	if err != nil {
		return nil, e.fail("remove", core.NewError(core.KindDirectoryList, core.SiteRemoveList, path, err))
	}
	return &removeFrame{path: path, entries: entries}, nil
}

func (e *ExtFS) removeFile(path string) error {
	if err := e.fs.RemoveFile(path); err != nil {
		return e.fail("remove", core.NewError(core.KindRemove, core.SiteRemoveFile, path, err))
	}
	return nil
}

// SizeofDirectoryRecursive returns the stat size of path plus the lstat size
// of every descendant. Directories count their own reported size (typically
// one block), so the total is content plus metadata overhead. A symlinked
// path is measured at its target; symlinks below it count their own size and
// are not followed.
func (e *ExtFS) SizeofDirectoryRecursive(path string) (int64, error) {
	e.logger.Debug().Str("path", path).Msg("sizeof directory")

	var total int64
	pending := []string{path}
	// path itself is followed when it is a symlink; nothing below it is.
	stat := e.fs.Stat

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		info, err := stat(current)
		stat = e.fs.Lstat
		if err != nil {
			return 0, e.fail("sizeof", core.NewError(core.KindStat, core.SiteSizeofStat, current, err))
		}
		total += info.Size()

		if !info.IsDir() {
			continue
		}
		entries, err := e.fs.ReadDir(current)
		if err != nil {
			return 0, e.fail("sizeof", core.NewError(core.KindDirectoryList, core.SiteSizeofList, current, err))
		}
		for i := len(entries) - 1; i >= 0; i-- {
			pending = append(pending, filepath.Join(current, entries[i].Name()))
		}
	}
	return total, nil
}
