// Package testutil provides real-filesystem fixtures for extfs tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/extfs/pkg/extfs"
	"github.com/arthur-debert/extfs/pkg/extfs/filesystem"
)

// RealFSTestHelper provides utilities for testing with real filesystem operations
type RealFSTestHelper struct {
	t       *testing.T
	tempDir string
	tracer  *filesystem.TracingFileSystem
	logs    *bytes.Buffer
}

// NewRealFSTestHelper creates a helper over a fresh temporary directory.
// Every filesystem call made through ExtFS is recorded.
func NewRealFSTestHelper(t *testing.T) *RealFSTestHelper {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs).Level(zerolog.TraceLevel)
	return &RealFSTestHelper{
		t:       t,
		tempDir: t.TempDir(),
		tracer:  filesystem.NewTracingFileSystem(filesystem.NewOSFileSystem(""), logger),
		logs:    logs,
	}
}

// SkipOnWindows skips tests relying on POSIX permission semantics
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission semantics required")
	}
}

// SkipAsRoot skips tests that need permission checks to deny access
func SkipAsRoot(t *testing.T) {
	t.Helper()
	SkipOnWindows(t)
	if os.Geteuid() == 0 {
		t.Skip("permission checks always pass for root")
	}
}

// ExtFS returns an ExtFS running on the recorded filesystem
func (h *RealFSTestHelper) ExtFS(opts ...extfs.Option) *extfs.ExtFS {
	opts = append([]extfs.Option{extfs.WithLogger(zerolog.New(h.logs).Level(zerolog.DebugLevel))}, opts...)
	return extfs.New(h.tracer, opts...)
}

// Tracer returns the recording filesystem
func (h *RealFSTestHelper) Tracer() *filesystem.TracingFileSystem {
	return h.tracer
}

// Logs returns everything logged so far
func (h *RealFSTestHelper) Logs() string {
	return h.logs.String()
}

// TempDir returns the temporary directory path
func (h *RealFSTestHelper) TempDir() string {
	return h.tempDir
}

// Path joins elems under the temporary directory
func (h *RealFSTestHelper) Path(elems ...string) string {
	return filepath.Join(append([]string{h.tempDir}, elems...)...)
}

// WriteFile creates a file (and its parents) under the temporary directory
func (h *RealFSTestHelper) WriteFile(rel string, content []byte) string {
	h.t.Helper()
	path := h.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		h.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Mkdir creates a directory (and its parents) under the temporary directory
func (h *RealFSTestHelper) Mkdir(rel string) string {
	h.t.Helper()
	path := h.Path(rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		h.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file under the temporary directory
func (h *RealFSTestHelper) ReadFile(rel string) []byte {
	h.t.Helper()
	data, err := os.ReadFile(h.Path(rel))
	if err != nil {
		h.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return data
}

// AssertExists verifies that a path exists
func (h *RealFSTestHelper) AssertExists(rel string) {
	h.t.Helper()
	if _, err := os.Lstat(h.Path(rel)); err != nil {
		h.t.Errorf("Expected %s to exist: %v", rel, err)
	}
}

// AssertNotExists verifies that a path does not exist
func (h *RealFSTestHelper) AssertNotExists(rel string) {
	h.t.Helper()
	if _, err := os.Lstat(h.Path(rel)); !os.IsNotExist(err) {
		h.t.Errorf("Expected %s to be absent, got err=%v", rel, err)
	}
}

// Pattern returns n bytes of a repeating, position-dependent pattern
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + i/251)
	}
	return b
}
