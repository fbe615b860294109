// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsdoc/jsdocrun/internal/config"
	"github.com/jsdoc/jsdocrun/internal/issue"
	"github.com/jsdoc/jsdocrun/internal/jsshell"
	"github.com/jsdoc/jsdocrun/internal/launcher"
	"github.com/jsdoc/jsdocrun/internal/selfloc"
	"github.com/jsdoc/jsdocrun/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// locate is a test seam for selfloc.Executable.
	locate = selfloc.Executable
)

// NewRootCommand builds the jsdocrun command.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jsdocrun [args...]",
		Short: "Run the main.js installed next to this executable",
		Long: TitleStyle.Render("jsdocrun") + SubtitleStyle.Render(" - bootstrap launcher for main.js") + `

jsdocrun finds the directory it was installed in and runs the main.js that
sits there in an embedded JavaScript shell. The script receives its own
absolute path as arguments[0], followed by everything passed on the command
line. jsdocrun interprets none of the arguments itself.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:               runLauncher,
	}
}

// argsTerminator is put in front of the forwarded arguments so cobra never
// matches the first one against a command name, including the hidden
// __complete and __completeNoDesc commands it registers on every run.
// runLauncher removes it again.
const argsTerminator = "--"

// Execute runs the root command with os.Args and exits with the script's status.
// This is called by main.main().
func Execute() {
	os.Exit(run(context.Background(), NewRootCommand(), os.Args[1:]))
}

// run executes root through fang with args and returns the process exit status.
func run(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(append([]string{argsTerminator}, args...))
	if err := fang.Execute(
		ctx,
		root,
		fang.WithoutVersion(),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return int(types.ExitLauncherFailure)
	}
	return int(types.ExitSuccess)
}

// runLauncher resolves the launcher location once, loads configuration from
// beside it, and hands the arguments to the embedded shell.
func runLauncher(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()
	args = forwardedArgs(args)

	loc, locErr := locate()

	cfg, cfgPath := loadConfig(ctx, stderr, loc, locErr, config.VerboseFromEnv())
	logger := newLogger(stderr, cfg.EffectiveLogLevel())
	if cfgPath != "" {
		logger.Debug("loaded configuration", "path", cfgPath)
	}

	l := &launcher.Launcher{
		Locate:     func() (selfloc.Location, error) { return loc, locErr },
		ScriptName: cfg.Script,
		SinglePath: !cfg.Launcher.DuplicateScriptPath,
		Logger:     logger,
		Interpreter: func(ctx context.Context, argv []string) (types.ExitCode, error) {
			return jsshell.Main(ctx, argv,
				jsshell.WithStdin(cmd.InOrStdin()),
				jsshell.WithStdout(cmd.OutOrStdout()),
				jsshell.WithStderr(stderr),
				jsshell.WithLogger(logger),
				jsshell.WithVersion(Version),
			)
		},
	}

	code, err := l.Run(ctx, args)
	if err == nil && code.IsSuccess() {
		return nil
	}
	if err != nil {
		logger.Debug("launcher finished with error", "code", code, "error", err)
	}
	exitErr := newExitError(code, err)
	exitErr.Verbose = cfg.Verbose
	return exitErr
}

// forwardedArgs drops the terminator run places in front of the arguments.
func forwardedArgs(args []string) []string {
	if len(args) > 0 && args[0] == argsTerminator {
		return args[1:]
	}
	return args
}

// loadConfig loads jsdocrun.cue from the launcher directory and returns it
// with the path it came from. Failures are reported as warnings and the
// defaults are used, matching how a missing file behaves. verbose selects
// the full error chain in the warning, since the file that would set it failed.
func loadConfig(ctx context.Context, stderr io.Writer, loc selfloc.Location, locErr error, verbose bool) (*config.Config, string) {
	opts := config.LoadOptions{ConfigFilePath: os.Getenv(config.EnvConfigPath)}
	if locErr == nil && loc != "" {
		opts.SearchDir = loc.Dir().String()
	}

	cfg, path, err := config.Load(ctx, opts)
	if err != nil {
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			renderIssue(stderr, ae.IssueID)
		}
		return config.DefaultConfig(), ""
	}
	return cfg, path
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors include suggestions; verbose mode adds the error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError is the fang error handler. Script failures were already
// reported by the shell, so only launcher errors are printed here.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	verbose := false
	if errors.As(err, &exitErr) {
		if exitErr.Silent() {
			return
		}
		verbose = exitErr.Verbose
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
		renderIssue(w, ae.IssueID)
		return
	}

	if errors.Is(err, jsshell.ErrScriptNotFound) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
		renderIssue(w, issue.ScriptNotFoundId)
		return
	}

	fang.DefaultErrorHandler(w, styles, err)
}

// renderIssue prints the catalog entry for id, if any.
func renderIssue(w io.Writer, id issue.Id) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
