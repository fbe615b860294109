// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsdoc/jsdocrun/internal/issue"
	"github.com/jsdoc/jsdocrun/internal/selfloc"
	"github.com/jsdoc/jsdocrun/pkg/types"

	"golang.org/x/exp/slices"
)

// DefaultScriptName is the sibling script run when no other name is configured.
const DefaultScriptName = "main.js"

type (
	// ScriptPath is the absolute path of the sibling script.
	ScriptPath types.FilesystemPath

	// ArgumentVector is the argument list handed to the interpreter.
	ArgumentVector []string

	// LocateFunc reports where the running program was loaded from.
	LocateFunc func() (selfloc.Location, error)

	// EntryPoint is a script interpreter's standard main. It receives the
	// argument vector and returns the exit status the process should end with.
	EntryPoint func(ctx context.Context, argv []string) (types.ExitCode, error)

	// Launcher wires self-location to an interpreter entry point.
	Launcher struct {
		// Locate resolves the executable location. Defaults to selfloc.Executable.
		Locate LocateFunc
		// Interpreter receives the argument vector. Required.
		Interpreter EntryPoint
		// ScriptName overrides DefaultScriptName.
		ScriptName string
		// SinglePath passes the script path once instead of twice, for
		// entry points that do not consume argv[0].
		SinglePath bool
		// Logger receives debug diagnostics. Defaults to slog.Default().
		Logger *slog.Logger
	}
)

// String returns the path.
func (p ScriptPath) String() string { return string(p) }

// ScriptPathFor joins the directory of loc with name.
func ScriptPathFor(loc selfloc.Location, name string) ScriptPath {
	return ScriptPath(loc.Dir().Join(name))
}

// BuildArgumentVector returns [script, script] ++ args. The result never
// aliases args.
func BuildArgumentVector(script ScriptPath, args []string) ArgumentVector {
	argv := make(ArgumentVector, 0, len(args)+2)
	argv = append(argv, script.String(), script.String())
	return append(argv, args...)
}

// Prepare resolves the script path and builds the argument vector without
// running anything.
func (l *Launcher) Prepare(args []string) (ScriptPath, ArgumentVector, error) {
	locate := l.Locate
	if locate == nil {
		locate = selfloc.Executable
	}

	loc, err := locate()
	if err == nil && loc == "" {
		err = &selfloc.ResolutionError{Cause: errors.New("empty location")}
	}
	if err != nil {
		return "", nil, issue.NewErrorContext().
			WithOperation("resolve executable location").
			WithSuggestion("Run the launcher from a regular file on disk").
			WithSuggestion("Invoke it by its full path to rule out PATH lookups").
			WithIssue(issue.LocationUnresolvedId).
			Wrap(err).
			BuildError()
	}

	name := l.ScriptName
	if name == "" {
		name = DefaultScriptName
	}

	script := ScriptPathFor(loc, name)
	argv := BuildArgumentVector(script, args)
	if l.SinglePath {
		argv = slices.Delete(argv, 0, 1)
	}

	l.logger().Debug("resolved launcher script", "location", loc.String(), "script", script.String(), "argc", len(argv))
	return script, argv, nil
}

// Run resolves the script, then transfers control to the interpreter. A
// location failure is returned before the interpreter is touched.
func (l *Launcher) Run(ctx context.Context, args []string) (types.ExitCode, error) {
	if l.Interpreter == nil {
		return types.ExitLauncherFailure, errors.New("launcher: no interpreter entry point configured")
	}

	_, argv, err := l.Prepare(args)
	if err != nil {
		return types.ExitLauncherFailure, err
	}

	return l.Interpreter(ctx, argv)
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
