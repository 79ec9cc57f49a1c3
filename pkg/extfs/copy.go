package extfs

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// newFilePerm is the mode new targets are created with, before umask.
const newFilePerm = 0o666

func openFlags(mode WriteMode) int {
	if mode == WriteAppend {
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
}

// CopyFileMode is CopyFile with the mode given as a host mode string.
func (e *ExtFS) CopyFileMode(source, target, mode string) error {
	m, ok := core.ParseWriteMode(mode)
	if !ok {
		return e.fail("copy", core.NewError(core.KindInvalidArg, core.SiteCopyMode, target, fmt.Errorf("invalid mode %q", mode)))
	}
	return e.CopyFile(source, target, m)
}

// CopyFile streams source into target, overwriting or appending.
func (e *ExtFS) CopyFile(source, target string, mode WriteMode) (err error) {
	if mode != WriteOverwrite && mode != WriteAppend {
		return e.fail("copy", core.NewError(core.KindInvalidArg, core.SiteCopyMode, target, fmt.Errorf("invalid mode %d", int(mode))))
	}
	e.logger.Debug().Str("source", source).Str("target", target).Stringer("mode", mode).Msg("copy file")

	if rerr := e.repairReadable(source); rerr != nil {
		return e.fail("copy", core.NewError(core.KindPermission, core.SiteCopyRepairSource, source, rerr))
	}
	if rerr := e.repairWritable(target); rerr != nil {
		return e.fail("copy", core.NewError(core.KindPermission, core.SiteCopyRepairTarget, target, rerr))
	}

	src, oerr := e.fs.Open(source)
	if oerr != nil {
		return e.fail("copy", core.NewError(core.KindIO, core.SiteCopyOpenSource, source, oerr))
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = e.fail("copy", core.NewError(core.KindIO, core.SiteCopyCloseSource, source, cerr))
		}
	}()

	dst, oerr := e.fs.OpenFile(target, openFlags(mode), newFilePerm)
	if oerr != nil {
		return e.fail("copy", core.NewError(core.KindIO, core.SiteCopyOpenTarget, target, oerr))
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = e.fail("copy", core.NewError(core.KindIO, core.SiteCopyCloseTarget, target, cerr))
		}
	}()

	buf := make([]byte, BufferSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			written, werr := dst.Write(buf[:n])
			if werr != nil {
				return e.fail("copy", core.NewError(core.KindIO, core.SiteCopyWrite, target, werr))
			}
			if written != n {
				return e.fail("copy", core.NewError(core.KindIO, core.SiteCopyShortWrite, target, io.ErrShortWrite))
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return e.fail("copy", core.NewError(core.KindIO, core.SiteCopyRead, source, rerr))
		}
	}
}

// WriteBlobToFileMode is WriteBlobToFile with the mode given as a host mode
// string.
func (e *ExtFS) WriteBlobToFileMode(path, mode string, blob []byte) error {
	m, ok := core.ParseWriteMode(mode)
	if !ok {
		return e.fail("blob", core.NewError(core.KindInvalidArg, core.SiteBlobMode, path, fmt.Errorf("invalid mode %q", mode)))
	}
	return e.WriteBlobToFile(path, m, blob)
}

// WriteBlobToFile writes the whole blob to path in a single write.
func (e *ExtFS) WriteBlobToFile(path string, mode WriteMode, blob []byte) (err error) {
	if mode != WriteOverwrite && mode != WriteAppend {
		return e.fail("blob", core.NewError(core.KindInvalidArg, core.SiteBlobMode, path, fmt.Errorf("invalid mode %d", int(mode))))
	}
	e.logger.Debug().Str("path", path).Stringer("mode", mode).Int("bytes", len(blob)).Msg("write blob")

	if rerr := e.repairWritable(path); rerr != nil {
		return e.fail("blob", core.NewError(core.KindPermission, core.SiteBlobRepair, path, rerr))
	}

	f, oerr := e.fs.OpenFile(path, openFlags(mode), newFilePerm)
	if oerr != nil {
		return e.fail("blob", core.NewError(core.KindIO, core.SiteBlobOpen, path, oerr))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = e.fail("blob", core.NewError(core.KindIO, core.SiteBlobClose, path, cerr))
		}
	}()

	written, werr := f.Write(blob)
	if werr != nil {
		return e.fail("blob", core.NewError(core.KindIO, core.SiteBlobWrite, path, werr))
	}
	if written != len(blob) {
		return e.fail("blob", core.NewError(core.KindIO, core.SiteBlobShortWrite, path, io.ErrShortWrite))
	}
	return nil
}
