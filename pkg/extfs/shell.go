package extfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/extfs/pkg/extfs/core"
)

// stderrTailSize bounds the command stderr kept for debug logging.
const stderrTailSize = 4096

// ShellOptions configures how SystemCall runs commands.
//
// SystemCall hands an arbitrary string to the command interpreter. Anything
// reaching it from a query must be validated by the caller; Disabled turns the
// capability off entirely.
type ShellOptions struct {
	// Disabled makes SystemCall fail without spawning anything
	Disabled bool

	// Shell is the interpreter (defaults to sh on Unix, cmd on Windows)
	Shell string

	// ShellArgs precede the command (defaults to -c, /c on Windows)
	ShellArgs []string

	// WorkDir sets the working directory for the command
	WorkDir string

	// Env adds environment variables on top of the current environment
	Env map[string]string

	// Timeout bounds the command; zero means no limit
	Timeout time.Duration

	// Stdout and Stderr receive the command output. Nil inherits the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// ShellOption is a function that configures ShellOptions
type ShellOption func(*ShellOptions)

// WithShellDisabled turns SystemCall off
func WithShellDisabled(disabled bool) ShellOption {
	return func(opts *ShellOptions) {
		opts.Disabled = disabled
	}
}

// WithShell sets the interpreter used for command execution. Without args
// the platform's command flag (-c, /c) is kept.
func WithShell(shell string, args ...string) ShellOption {
	return func(opts *ShellOptions) {
		opts.Shell = shell
		if len(args) > 0 {
			opts.ShellArgs = args
		}
	}
}

// WithWorkDir sets the working directory for the command
func WithWorkDir(dir string) ShellOption {
	return func(opts *ShellOptions) {
		opts.WorkDir = dir
	}
}

// WithEnv sets environment variables for the command
func WithEnv(env map[string]string) ShellOption {
	return func(opts *ShellOptions) {
		opts.Env = env
	}
}

// WithTimeout sets a timeout for command execution
func WithTimeout(timeout time.Duration) ShellOption {
	return func(opts *ShellOptions) {
		opts.Timeout = timeout
	}
}

// WithOutput sends command output to the given writers
func WithOutput(stdout, stderr io.Writer) ShellOption {
	return func(opts *ShellOptions) {
		opts.Stdout = stdout
		opts.Stderr = stderr
	}
}

// defaultShellOptions returns default options for shell commands
func defaultShellOptions() *ShellOptions {
	opts := &ShellOptions{}
	if IsWindows() {
		opts.Shell = "cmd"
		opts.ShellArgs = []string{"/c"}
	} else {
		opts.Shell = "sh"
		opts.ShellArgs = []string{"-c"}
	}
	return opts
}

// SystemCall runs command through the configured interpreter and returns its
// status: 0 on a zero exit, the negated exit code otherwise. When the command
// cannot be started or is killed, the status is the error's code and the
// error is returned as well.
func (e *ExtFS) SystemCall(ctx context.Context, command string) (int, error) {
	opts := e.shell
	if opts.Disabled {
		err := e.fail("shell", core.NewError(core.KindExec, core.SiteShellDisabled, command, errors.New("shell commands are disabled")))
		return core.Code(err), err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, opts.ShellArgs...), command)
	cmd := exec.CommandContext(ctx, opts.Shell, args...)
	// Children of the shell may hold the output pipes after it is killed.
	cmd.WaitDelay = time.Second
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	if len(opts.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}
	var stderr *tailBuffer
	if e.logger.GetLevel() <= zerolog.DebugLevel {
		stderr = &tailBuffer{max: stderrTailSize}
		cmd.Stderr = io.MultiWriter(cmd.Stderr, stderr)
	}

	e.logger.Debug().Str("shell", opts.Shell).Str("command", command).Msg("system call")

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if status, ok := exitStatus(code); ok {
			e.logger.Debug().Str("command", command).Int("exit", code).Stringer("stderr", stderr).Msg("command exited nonzero")
			return status, nil
		}
		site := core.SiteShellSignal
		if code > math.MaxInt32 {
			site = core.SiteShellExitRange
		}
		serr := e.fail("shell", core.NewError(core.KindExec, site, command, err))
		return core.Code(serr), serr
	}

	serr := e.fail("shell", core.NewError(core.KindExec, core.SiteShellStart, command, err))
	return core.Code(serr), serr
}

// exitStatus converts a process exit code to a call status. It reports false
// for codes that are not a plain nonzero exit: -1 for a signal death, and
// values beyond the INTEGER range such as Windows NTSTATUS crash codes
// (0xC0000005).
func exitStatus(code int) (int, bool) {
	if code <= 0 || code > math.MaxInt32 {
		return 0, false
	}
	return -code, true
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= b.max {
		b.buf = append(b.buf[:0], p[n-b.max:]...)
		return n, nil
	}
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return n, nil
}

func (b *tailBuffer) String() string {
	if b == nil {
		return ""
	}
	return string(b.buf)
}
