// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

const (
	// ExitSuccess is returned when the script ran to completion.
	ExitSuccess ExitCode = 0
	// ExitLauncherFailure is returned when the launcher fails before hand-off.
	ExitLauncherFailure ExitCode = 1
	// ExitRuntimeError is returned when the script throws an uncaught exception.
	ExitRuntimeError ExitCode = 3
	// ExitFileNotFound is returned when the script file could not be read.
	ExitFileNotFound ExitCode = 4
)

// ExitCode represents a process exit status code.
// Exit codes are in the range 0-255 on POSIX systems; Clamp folds other
// values into that range. The zero value (0) means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// Clamp folds an arbitrary status into the 0-255 range the way POSIX
// shells report it (status & 0xff).
func (c ExitCode) Clamp() ExitCode { return c & 0xff }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
