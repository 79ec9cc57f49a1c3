package extfs_test

import (
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/extfs/pkg/extfs"
	"github.com/arthur-debert/extfs/pkg/extfs/core"
	"github.com/arthur-debert/extfs/pkg/extfs/testutil"
)

func TestGetPathType(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()

	file := h.WriteFile("f.txt", []byte("x"))
	dir := h.Mkdir("d")

	typ, err := e.GetPathType(file)
	require.NoError(t, err)
	assert.Equal(t, extfs.PathTypeFile, typ)

	typ, err = e.GetPathType(dir)
	require.NoError(t, err)
	assert.Equal(t, extfs.PathTypeDir, typ)

	t.Run("symlink is not followed", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		link := h.Path("link")
		require.NoError(t, os.Symlink(dir, link))

		typ, err := e.GetPathType(link)
		require.NoError(t, err)
		assert.Equal(t, extfs.PathTypeSymlink, typ)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := e.GetPathType(h.Path("missing"))
		require.Error(t, err)
		assert.True(t, core.IsKind(err, core.KindStat))
		assert.Equal(t, core.SiteTypeStat, core.SiteOf(err))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestGetPathSize(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()

	size, err := e.GetPathSize(h.WriteFile("f", make([]byte, 123)))
	require.NoError(t, err)
	assert.Equal(t, int64(123), size)

	if !extfs.IsWindows() {
		link := h.Path("link")
		require.NoError(t, os.Symlink(h.Path("f"), link))
		size, err = e.GetPathSize(link)
		require.NoError(t, err)
		assert.Equal(t, int64(123), size)
	}

	_, err = e.GetPathSize(h.Path("missing"))
	assert.Equal(t, core.SiteSizeStat.Code(), core.Code(err))
}

func TestCheckAccess(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()
	file := h.WriteFile("f", nil)

	assert.NoError(t, e.CheckAccess(file, extfs.AccessExists))
	assert.NoError(t, e.CheckAccess(file, extfs.AccessRead|extfs.AccessWrite))
	assert.NoError(t, e.PathExists(file))

	err := e.PathExists(h.Path("missing"))
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindAccess))

	t.Run("denied", func(t *testing.T) {
		testutil.SkipAsRoot(t)
		require.NoError(t, os.Chmod(file, 0o400))
		err := e.CheckAccess(file, extfs.AccessWrite)
		assert.True(t, core.IsKind(err, core.KindAccess))
	})
}

func TestSetPermissions(t *testing.T) {
	testutil.SkipOnWindows(t)
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()
	file := h.WriteFile("f", nil)

	require.NoError(t, e.SetPermissions(file, 0o600))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	err = e.SetPermissions(h.Path("missing"), 0o600)
	assert.True(t, core.IsKind(err, core.KindPermission))
	assert.Equal(t, core.SiteChmod, core.SiteOf(err))
}

func TestEnsureReadWritable(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()

	t.Run("already accessible", func(t *testing.T) {
		file := h.WriteFile("ok", nil)
		h.Tracer().Reset()
		require.NoError(t, e.EnsureReadWritable(file))
		for _, c := range h.Tracer().Calls() {
			assert.NotEqual(t, "chmod", c.Op)
		}
	})

	t.Run("missing", func(t *testing.T) {
		err := e.EnsureReadWritable(h.Path("missing"))
		assert.Equal(t, core.SiteReadWritableMissing, core.SiteOf(err))
	})

	t.Run("repaired", func(t *testing.T) {
		testutil.SkipAsRoot(t)
		file := h.WriteFile("locked", nil)
		require.NoError(t, os.Chmod(file, 0o400))

		require.NoError(t, e.EnsureReadWritable(file))
		info, err := os.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, extfs.DefaultPerm, info.Mode().Perm())
	})
}
