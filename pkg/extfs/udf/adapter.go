package udf

import (
	"context"

	"github.com/arthur-debert/extfs/pkg/extfs"
	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// Adapter exposes extfs operations with host null semantics. When any input
// is null the operation is not run and the result is null. Otherwise the
// result is 0 (or a size) on success and the failure's negative code on error.
type Adapter struct {
	fs *extfs.ExtFS
}

// NewAdapter creates an adapter over e.
func NewAdapter(e *extfs.ExtFS) *Adapter {
	return &Adapter{fs: e}
}

// PathExists reports 0 when path exists.
func (a *Adapter) PathExists(path Varchar) IntResult {
	if anyNull(path.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.PathExists(path.Value)))
}

// PathReadableWritable reports 0 when path is, or has been made, readable
// and writable.
func (a *Adapter) PathReadableWritable(path Varchar) IntResult {
	if anyNull(path.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.EnsureReadWritable(path.Value)))
}

// CopyFile writes ("w") or appends ("a") source to target.
func (a *Adapter) CopyFile(source, target Varchar, mode Char) IntResult {
	if anyNull(source.Ind, target.Ind, mode.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.CopyFileMode(source.Value, target.Value, mode.Value)))
}

// ClobToFile writes ("w") or appends ("a") clob to path.
func (a *Adapter) ClobToFile(path Varchar, mode Char, clob Clob) IntResult {
	if anyNull(path.Ind, mode.Ind, clob.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.WriteBlobToFileMode(path.Value, mode.Value, clob.Data)))
}

// MakeDirectory creates path.
func (a *Adapter) MakeDirectory(path Varchar) IntResult {
	if anyNull(path.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.MakeDirectory(path.Value)))
}

// RemoveDirectory removes path recursively.
func (a *Adapter) RemoveDirectory(path Varchar) IntResult {
	if anyNull(path.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.RemoveDirectoryRecursive(path.Value)))
}

// MoveDirectory renames source to target.
func (a *Adapter) MoveDirectory(source, target Varchar) IntResult {
	if anyNull(source.Ind, target.Ind) {
		return IntResult{Ind: Null}
	}
	return intResult(core.Code(a.fs.MoveDirectory(source.Value, target.Value)))
}

// SizeofDirectory reports the recursive size of path, or a negative code.
func (a *Adapter) SizeofDirectory(path Varchar) BigIntResult {
	if anyNull(path.Ind) {
		return BigIntResult{Ind: Null}
	}
	size, err := a.fs.SizeofDirectoryRecursive(path.Value)
	if err != nil {
		return BigIntResult{Value: int64(core.Code(err)), Ind: NotNull}
	}
	return BigIntResult{Value: size, Ind: NotNull}
}

// IsWindows reports 1 on Windows, 0 elsewhere.
func (a *Adapter) IsWindows() IntResult {
	if extfs.IsWindows() {
		return intResult(1)
	}
	return intResult(0)
}

// SystemCall runs command through the OS interpreter and reports its status,
// negative on failure. The command string is executed verbatim.
func (a *Adapter) SystemCall(ctx context.Context, command Varchar) IntResult {
	if anyNull(command.Ind) {
		return IntResult{Ind: Null}
	}
	status, _ := a.fs.SystemCall(ctx, command.Value)
	return intResult(status)
}
