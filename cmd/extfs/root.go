package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/extfs/internal/config"
	"github.com/arthur-debert/extfs/pkg/extfs"
	"github.com/arthur-debert/extfs/pkg/extfs/filesystem"
	"github.com/arthur-debert/extfs/pkg/extfs/udf"
)

// settings are the environment configuration with flag overrides applied.
type settings struct {
	cfg *config.Config

	logLevel     string
	root         string
	trace        bool
	shellEnabled bool
	shellTimeout time.Duration
}

// load reads the environment and applies the flags the user set. A malformed
// variable fails the command rather than falling back to defaults.
func (s *settings) load(flags *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if flags.Changed("root") {
		cfg.Root = s.root
	}
	if flags.Changed("trace") {
		cfg.Trace = s.trace
	}
	if flags.Changed("shell") {
		cfg.ShellEnabled = s.shellEnabled
	}
	if flags.Changed("shell-timeout") {
		cfg.ShellTimeout = s.shellTimeout
	}
	s.cfg = cfg
	return nil
}

// newRootCmd builds the command tree. Configuration is read from the
// environment; persistent flags override it.
func newRootCmd() *cobra.Command {
	s := &settings{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "extfs",
		Short: "Filesystem primitives for database external functions",
		Long: `extfs runs the filesystem functions a database engine binds as external
functions (path checks, file copy, CLOB dumps, directory create/remove/move/size
and shell calls) with the same argument and null-indicator semantics, so they
can be exercised from a terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&s.logLevel, "log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error; env EXTFS_LOG_LEVEL)")
	flags.StringVar(&s.root, "root", defaults.Root, "resolve relative paths under this directory (env EXTFS_ROOT)")
	flags.BoolVar(&s.trace, "trace", defaults.Trace, "log every filesystem call (env EXTFS_TRACE)")
	flags.BoolVar(&s.shellEnabled, "shell", defaults.ShellEnabled, "allow SYSTEM_CALL to run commands (env EXTFS_SHELL_ENABLED)")
	flags.DurationVar(&s.shellTimeout, "shell-timeout", defaults.ShellTimeout, "limit for SYSTEM_CALL commands, 0 for none (env EXTFS_SHELL_TIMEOUT)")

	cmd.AddCommand(versionCmd)
	cmd.AddCommand(newCallCommand(s))
	cmd.AddCommand(newFunctionsCommand())

	return cmd
}

// adapter wires the configured filesystem, logger and shell into an Adapter.
func (s *settings) adapter(stdout, stderr io.Writer) (*udf.Adapter, error) {
	logger, err := extfs.NewLoggerFromString(stderr, s.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var fsys filesystem.FileSystem = filesystem.NewOSFileSystem(s.cfg.Root)
	if s.cfg.Trace {
		fsys = filesystem.NewTracingFileSystem(fsys, logger.Level(zerolog.TraceLevel))
	}

	shellOpts := []extfs.ShellOption{
		extfs.WithShellDisabled(!s.cfg.ShellEnabled),
		extfs.WithTimeout(s.cfg.ShellTimeout),
	}
	if s.cfg.Shell != "" {
		shellOpts = append(shellOpts, extfs.WithShell(s.cfg.Shell, s.cfg.ShellArgs...))
	}
	if s.cfg.Root != "" {
		shellOpts = append(shellOpts, extfs.WithWorkDir(s.cfg.Root))
	}
	if s.cfg.CaptureOutput {
		shellOpts = append(shellOpts, extfs.WithOutput(stdout, stderr))
	}

	e := extfs.New(fsys, extfs.WithLogger(logger), extfs.WithShellOptions(shellOpts...))
	return udf.NewAdapter(e), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of extfs`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "extfs version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
