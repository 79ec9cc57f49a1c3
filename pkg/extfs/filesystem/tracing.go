package filesystem

import (
	"io/fs"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// Call is one capability invocation seen by a TracingFileSystem.
type Call struct {
	Op   string
	Path string
	Err  error
}

// TracingFileSystem wraps a FileSystem, logging every call at trace level
// and keeping a record of it.
type TracingFileSystem struct {
	inner  FileSystem
	logger zerolog.Logger

	mu    sync.Mutex
	calls []Call
}

// NewTracingFileSystem creates a new tracing wrapper around inner.
func NewTracingFileSystem(inner FileSystem, logger zerolog.Logger) *TracingFileSystem {
	return &TracingFileSystem{inner: inner, logger: logger}
}

// Calls returns a copy of the calls recorded so far.
func (t *TracingFileSystem) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// Reset discards the recorded calls.
func (t *TracingFileSystem) Reset() {
	t.mu.Lock()
	t.calls = nil
	t.mu.Unlock()
}

func (t *TracingFileSystem) record(op, path string, err error) {
	t.mu.Lock()
	t.calls = append(t.calls, Call{Op: op, Path: path, Err: err})
	t.mu.Unlock()

	ev := t.logger.Trace().Str("op", op).Str("path", path)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("fs call")
}

// Access implements PathFS
func (t *TracingFileSystem) Access(name string, mode core.AccessMode) error {
	err := t.inner.Access(name, mode)
	t.record("access:"+mode.String(), name, err)
	return err
}

// Chmod implements PathFS
func (t *TracingFileSystem) Chmod(name string, perm fs.FileMode) error {
	err := t.inner.Chmod(name, perm)
	t.record("chmod", name, err)
	return err
}

// Lstat implements PathFS
func (t *TracingFileSystem) Lstat(name string) (fs.FileInfo, error) {
	info, err := t.inner.Lstat(name)
	t.record("lstat", name, err)
	return info, err
}

// Stat implements PathFS
func (t *TracingFileSystem) Stat(name string) (fs.FileInfo, error) {
	info, err := t.inner.Stat(name)
	t.record("stat", name, err)
	return info, err
}

// ReadDir implements DirFS
func (t *TracingFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := t.inner.ReadDir(name)
	t.record("readdir", name, err)
	return entries, err
}

// Mkdir implements DirFS
func (t *TracingFileSystem) Mkdir(name string, perm fs.FileMode) error {
	err := t.inner.Mkdir(name, perm)
	t.record("mkdir", name, err)
	return err
}

// RemoveDir implements DirFS
func (t *TracingFileSystem) RemoveDir(name string) error {
	err := t.inner.RemoveDir(name)
	t.record("rmdir", name, err)
	return err
}

// RemoveFile implements DirFS
func (t *TracingFileSystem) RemoveFile(name string) error {
	err := t.inner.RemoveFile(name)
	t.record("unlink", name, err)
	return err
}

// Rename implements DirFS
func (t *TracingFileSystem) Rename(oldpath, newpath string) error {
	err := t.inner.Rename(oldpath, newpath)
	t.record("rename", oldpath+" -> "+newpath, err)
	return err
}

// Open implements OpenFS
func (t *TracingFileSystem) Open(name string) (File, error) {
	f, err := t.inner.Open(name)
	t.record("open", name, err)
	return f, err
}

// OpenFile implements OpenFS
func (t *TracingFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	f, err := t.inner.OpenFile(name, flag, perm)
	t.record("openfile", name, err)
	return f, err
}
