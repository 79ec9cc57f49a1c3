package core

import (
	"errors"
	"fmt"
)

// Kind groups failures by the primitive that failed.
type Kind string

const (
	KindAccess        Kind = "access"
	KindPermission    Kind = "permission"
	KindStat          Kind = "stat"
	KindIO            Kind = "io"
	KindInvalidArg    Kind = "invalid-argument"
	KindRename        Kind = "rename"
	KindDirectoryList Kind = "directory-list"
	KindCreate        Kind = "create"
	KindRemove        Kind = "remove"
	KindExec          Kind = "exec"
)

// Site identifies the exact place an operation failed. Each site maps to a
// unique negative code through Code; the numbering is stable and must not be
// reused when sites are added.
type Site int

const (
	SiteAccess Site = 1 + iota
	SiteChmod
	SiteTypeStat
	SiteSizeStat

	SiteCopyMode
	SiteCopyRepairSource
	SiteCopyRepairTarget
	SiteCopyOpenSource
	SiteCopyOpenTarget
	SiteCopyRead
	SiteCopyWrite
	SiteCopyShortWrite
	SiteCopyCloseSource
	SiteCopyCloseTarget

	SiteBlobMode
	SiteBlobRepair
	SiteBlobOpen
	SiteBlobWrite
	SiteBlobShortWrite
	SiteBlobClose

	SiteMkdir
	SiteMkdirChmod

	SiteRemoveStat
	SiteRemoveList
	SiteRemoveFile
	SiteRemoveDir

	SiteRename

	SiteSizeofStat
	SiteSizeofList

	SiteReadWritableMissing
	SiteReadWritableRepair
	SiteReadWritableDenied

	SiteShellDisabled
	SiteShellStart
	SiteShellSignal
	SiteShellExitRange
)

var siteNames = map[Site]string{
	SiteAccess:              "path.access",
	SiteChmod:               "path.chmod",
	SiteTypeStat:            "path.type",
	SiteSizeStat:            "path.size",
	SiteCopyMode:            "copy.mode",
	SiteCopyRepairSource:    "copy.repair-source",
	SiteCopyRepairTarget:    "copy.repair-target",
	SiteCopyOpenSource:      "copy.open-source",
	SiteCopyOpenTarget:      "copy.open-target",
	SiteCopyRead:            "copy.read",
	SiteCopyWrite:           "copy.write",
	SiteCopyShortWrite:      "copy.short-write",
	SiteCopyCloseSource:     "copy.close-source",
	SiteCopyCloseTarget:     "copy.close-target",
	SiteBlobMode:            "blob.mode",
	SiteBlobRepair:          "blob.repair",
	SiteBlobOpen:            "blob.open",
	SiteBlobWrite:           "blob.write",
	SiteBlobShortWrite:      "blob.short-write",
	SiteBlobClose:           "blob.close",
	SiteMkdir:               "mkdir.create",
	SiteMkdirChmod:          "mkdir.chmod",
	SiteRemoveStat:          "remove.stat",
	SiteRemoveList:          "remove.list",
	SiteRemoveFile:          "remove.file",
	SiteRemoveDir:           "remove.dir",
	SiteRename:              "move.rename",
	SiteSizeofStat:          "sizeof.stat",
	SiteSizeofList:          "sizeof.list",
	SiteReadWritableMissing: "readwritable.missing",
	SiteReadWritableRepair:  "readwritable.repair",
	SiteReadWritableDenied:  "readwritable.denied",
	SiteShellDisabled:       "shell.disabled",
	SiteShellStart:          "shell.start",
	SiteShellSignal:         "shell.signal",
	SiteShellExitRange:      "shell.exit-range",
}

// String returns the symbolic name of the site.
func (s Site) String() string {
	if name, ok := siteNames[s]; ok {
		return name
	}
	return fmt.Sprintf("site(%d)", int(s))
}

// Code returns the status code reported to callers for a failure at this site.
func (s Site) Code() int {
	return -int(s)
}

// CodeUnknown is reported for errors that did not originate at a known site.
const CodeUnknown = -999

// Error is a failure tagged with the kind of primitive and the site it
// happened at.
type Error struct {
	Kind Kind
	Site Site
	Path string
	Err  error
}

// NewError creates an Error for the given site.
func NewError(kind Kind, site Site, path string, err error) *Error {
	return &Error{Kind: kind, Site: site, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error at %s on '%s': %v (code %d)", e.Kind, e.Site, e.Path, e.Err, e.Code())
	}
	return fmt.Sprintf("%s error at %s on '%s' (code %d)", e.Kind, e.Site, e.Path, e.Code())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the negative status code for this failure.
func (e *Error) Code() int {
	return e.Site.Code()
}

// Code maps an operation result to its status code: 0 for nil, the site code
// for an *Error, CodeUnknown otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return CodeUnknown
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// SiteOf returns the failure site of err, or 0 when err carries none.
func SiteOf(err error) Site {
	var e *Error
	if errors.As(err, &e) {
		return e.Site
	}
	return 0
}
