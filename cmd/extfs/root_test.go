package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdSetup(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "extfs", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "call")
	assert.Contains(t, names, "functions")

	for _, flag := range []string{"log-level", "root", "trace", "shell", "shell-timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "extfs version dev")
}

func TestFunctionsCommand(t *testing.T) {
	out, err := run(t, "functions")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "RETURNS"))
	assert.Contains(t, out, "SIZEOF_DIRECTORY(PATH VARCHAR) RETURNS BIGINT")
}

func TestCallCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "call", "make_directory", filepath.Join(dir, "made"))
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, err = run(t, "call", "clob_to_file", filepath.Join(dir, "made", "f"), "w", "hello")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	data, err := os.ReadFile(filepath.Join(dir, "made", "f"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	out, err = run(t, "call", "PATH_EXISTS", `\N`)
	require.NoError(t, err)
	assert.Equal(t, "NULL\n", out)

	out, err = run(t, "call", "path_exists", filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-"), out)
}

func TestCallCommandRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), make([]byte, 42), 0o644))

	out, err := run(t, "--root", dir, "call", "sizeof_directory", "f", "--json")
	require.NoError(t, err)

	var res callResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "SIZEOF_DIRECTORY", res.Function)
	assert.Equal(t, "BIGINT", res.Type)
	assert.False(t, res.Null)
	require.NotNil(t, res.Value)
	assert.Equal(t, int64(42), *res.Value)
}

func TestCallCommandShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}

	// A login session exports these; only the EXTFS_ names configure extfs.
	t.Setenv("SHELL", "/bin/bash")
	t.Setenv("ROOT", "/nonexistent/extfs-root")

	out, err := run(t, "call", "system_call", "exit 2")
	require.NoError(t, err)
	assert.Equal(t, "-2\n", out)

	out, err = run(t, "--shell=false", "call", "system_call", "exit 0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-"), out)
}

func TestCallCommandErrors(t *testing.T) {
	_, err := run(t, "call", "format_disk")
	assert.ErrorContains(t, err, "unknown function")

	_, err = run(t, "call", "copy_file", "/a")
	assert.ErrorContains(t, err, "expects 3 arguments")

	_, err = run(t, "--log-level", "loud", "call", "is_windows")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCallCommandShellFromEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}

	t.Setenv("EXTFS_SHELL", "sh")
	out, err := run(t, "call", "system_call", "exit 4")
	require.NoError(t, err)
	assert.Equal(t, "-4\n", out)

	t.Setenv("EXTFS_SHELL_ENABLED", "false")
	out, err = run(t, "call", "system_call", "exit 0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-"), out)

	out, err = run(t, "--shell=true", "call", "system_call", "exit 0")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestInvalidEnvironmentFailsClosed(t *testing.T) {
	t.Setenv("EXTFS_SHELL_ENABLED", "false")
	t.Setenv("EXTFS_SHELL_TIMEOUT", "10")

	out, err := run(t, "call", "system_call", "exit 0")
	assert.ErrorContains(t, err, "failed to load config")
	assert.Empty(t, out)
}
