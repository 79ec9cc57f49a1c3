package extfs_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/extfs/pkg/extfs"
	"github.com/arthur-debert/extfs/pkg/extfs/testutil"
)

func TestFailuresAreLogged(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	e := h.ExtFS()

	_, err := e.GetPathType(h.Path("missing"))
	require.Error(t, err)
	assert.Contains(t, h.Logs(), `"site":"path.type"`)
	assert.Contains(t, h.Logs(), `"kind":"stat"`)
}

func TestNewLoggerFromString(t *testing.T) {
	var buf bytes.Buffer
	logger, err := extfs.NewLoggerFromString(&buf, " WARN ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "lib=extfs")

	_, err = extfs.NewLoggerFromString(&buf, "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
