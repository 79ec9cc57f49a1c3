package extfs

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// NewLogger creates a console logger at level, tagged lib=extfs.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("lib", "extfs").
		Logger()
}

// NewLoggerFromString is NewLogger with the level given by name, as it comes
// from configuration ("warn", "DEBUG", ...).
func NewLoggerFromString(w io.Writer, levelStr string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	return NewLogger(w, level), nil
}

// fail logs a failed operation with its site and code, and returns it.
func (e *ExtFS) fail(op string, err *core.Error) error {
	e.logger.Debug().
		Str("op", op).
		Str("kind", string(err.Kind)).
		Str("site", err.Site.String()).
		Int("code", err.Code()).
		Str("path", err.Path).
		AnErr("cause", err.Err).
		Msg("operation failed")
	return err
}
