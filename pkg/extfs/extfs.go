// Package extfs implements the filesystem primitives exposed to a database
// engine as external functions: access checks, chmod, stat, buffered copy,
// blob dumps, directory create/remove/move/size and a raw shell call.
//
// Every operation is synchronous and single-shot. Failures are *core.Error
// values; core.Code turns them into the negative status codes the host
// runtime receives.
package extfs

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
	"github.com/arthur-debert/extfs/pkg/extfs/filesystem"
)

// Re-exported core types so callers rarely need the core package.
type (
	PathType   = core.PathType
	AccessMode = core.AccessMode
	WriteMode  = core.WriteMode
	Error      = core.Error
)

const (
	PathTypeFile    = core.PathTypeFile
	PathTypeDir     = core.PathTypeDir
	PathTypeSymlink = core.PathTypeSymlink
	PathTypeOther   = core.PathTypeOther

	AccessExists  = core.AccessExists
	AccessRead    = core.AccessRead
	AccessWrite   = core.AccessWrite
	AccessExecute = core.AccessExecute

	WriteOverwrite = core.WriteOverwrite
	WriteAppend    = core.WriteAppend

	DefaultPerm = core.DefaultPerm
	BufferSize  = core.BufferSize
)

// ExtFS runs operations against a FileSystem.
type ExtFS struct {
	fs     filesystem.FileSystem
	logger zerolog.Logger
	shell  ShellOptions
}

// Option configures an ExtFS.
type Option func(*ExtFS)

// WithLogger sets the logger used for operation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *ExtFS) {
		e.logger = logger
	}
}

// WithShellOptions replaces the options used by SystemCall.
func WithShellOptions(opts ...ShellOption) Option {
	return func(e *ExtFS) {
		for _, opt := range opts {
			opt(&e.shell)
		}
	}
}

// New creates an ExtFS over fsys.
func New(fsys filesystem.FileSystem, opts ...Option) *ExtFS {
	e := &ExtFS{
		fs:     fsys,
		logger: zerolog.Nop(),
		shell:  *defaultShellOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewOS creates an ExtFS over the unrooted host filesystem.
func NewOS(opts ...Option) *ExtFS {
	return New(filesystem.NewOSFileSystem(""), opts...)
}

// FileSystem returns the underlying filesystem.
func (e *ExtFS) FileSystem() filesystem.FileSystem {
	return e.fs
}
