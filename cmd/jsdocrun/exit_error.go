// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/jsdoc/jsdocrun/internal/jsshell"
	"github.com/jsdoc/jsdocrun/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
	// Verbose asks the error handler for the full error chain.
	Verbose bool
}

// newExitError pairs an exit status with the error that caused it. A zero
// status with an error is promoted to ExitLauncherFailure.
func newExitError(code types.ExitCode, err error) *ExitError {
	if code.IsSuccess() && err != nil {
		code = types.ExitLauncherFailure
	}
	return &ExitError{Code: code.Clamp(), Err: err}
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Silent reports whether the failure has already been shown to the user.
// A bare status from quit(n) and a script exception printed by the shell
// need no further output.
func (e *ExitError) Silent() bool {
	return e.Err == nil || errors.Is(e.Err, jsshell.ErrScriptFailed)
}
