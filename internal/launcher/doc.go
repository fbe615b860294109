// SPDX-License-Identifier: MPL-2.0

// Package launcher finds the script installed next to the running executable
// and hands it to the embedded shell.
//
// The argument vector passed on is [script, script, args...]. The shell
// consumes the first element as the file to run, and the script reads the
// second to learn its own location, which it uses to find resources that sit
// beside it.
package launcher
