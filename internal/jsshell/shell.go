// SPDX-License-Identifier: MPL-2.0

package jsshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsdoc/jsdocrun/pkg/types"

	"github.com/dop251/goja"
)

// ExitInterrupted is returned when the context is cancelled mid-script.
const ExitInterrupted types.ExitCode = 130

var (
	// ErrNoScript is returned when argv is empty.
	ErrNoScript = errors.New("no script file given")
	// ErrScriptNotFound is returned when the script file cannot be read.
	ErrScriptNotFound = errors.New("script file not found")
	// ErrScriptFailed is the sentinel wrapped by ScriptError.
	ErrScriptFailed = errors.New("script failed")
)

type (
	// Option configures a shell run.
	Option func(*shell)

	// ScriptError reports an uncaught exception, a syntax error, or an
	// interruption raised while the script was running.
	ScriptError struct {
		Script string
		Cause  error
	}

	shell struct {
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
		env     []string
		logger  *slog.Logger
		version string
	}

	// quitRequest is the interrupt value used by the quit() builtin.
	quitRequest struct {
		code types.ExitCode
	}
)

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Script, e.Cause)
}

// Unwrap returns ErrScriptFailed and the underlying cause.
func (e *ScriptError) Unwrap() []error { return []error{ErrScriptFailed, e.Cause} }

// WithStdout sets the stream used by print and console.log.
func WithStdout(w io.Writer) Option { return func(s *shell) { s.stdout = w } }

// WithStderr sets the stream used for diagnostics and console.error.
func WithStderr(w io.Writer) Option { return func(s *shell) { s.stderr = w } }

// WithStdin sets the stream used by readline.
func WithStdin(r io.Reader) Option { return func(s *shell) { s.stdin = r } }

// WithEnv sets the KEY=VALUE list exposed as the environment global.
func WithEnv(env []string) Option { return func(s *shell) { s.env = env } }

// WithLogger sets the logger for shell diagnostics.
func WithLogger(l *slog.Logger) Option { return func(s *shell) { s.logger = l } }

// WithVersion sets the string returned by the version() builtin.
func WithVersion(v string) Option { return func(s *shell) { s.version = v } }

// Main runs argv[0] as a script with argv[1:] as its arguments.
// Main returns once the script finishes; the exit code is meaningful even
// when err is non-nil.
func Main(ctx context.Context, argv []string, opts ...Option) (types.ExitCode, error) {
	s := &shell{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		env:     os.Environ(),
		logger:  slog.Default(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(argv) == 0 {
		return types.ExitLauncherFailure, ErrNoScript
	}
	script, args := argv[0], argv[1:]

	src, err := os.ReadFile(script)
	if err != nil {
		fmt.Fprintf(s.stderr, "js: couldn't open file %q\n", script)
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrScriptNotFound, script)
		}
		return types.ExitFileNotFound, err
	}

	vm := goja.New()
	if err := s.install(vm, script, args); err != nil {
		return types.ExitLauncherFailure, fmt.Errorf("failed to set up script globals: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	s.logger.Debug("running script", "script", script, "args", len(args))
	_, err = vm.RunScript(script, string(src))
	return s.exitStatus(script, err)
}

// exitStatus maps the result of RunScript to an exit code.
func (s *shell) exitStatus(script string, err error) (types.ExitCode, error) {
	if err == nil {
		return types.ExitSuccess, nil
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if q, ok := interrupted.Value().(quitRequest); ok {
			s.logger.Debug("script called quit", "code", q.code)
			return q.code, nil
		}
		fmt.Fprintf(s.stderr, "js: interrupted: %v\n", interrupted.Value())
		return ExitInterrupted, &ScriptError{Script: script, Cause: err}
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		fmt.Fprintf(s.stderr, "js: uncaught exception: %s", exception.String())
		return types.ExitRuntimeError, &ScriptError{Script: script, Cause: err}
	}

	fmt.Fprintf(s.stderr, "js: %v\n", err)
	return types.ExitRuntimeError, &ScriptError{Script: script, Cause: err}
}

// baseDir returns the directory used to resolve relative load() paths.
func baseDir(script string) string {
	if abs, err := filepath.Abs(script); err == nil {
		return filepath.Dir(abs)
	}
	return filepath.Dir(script)
}
