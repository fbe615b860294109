// SPDX-License-Identifier: MPL-2.0

// Package jsshell is the embedded JavaScript shell that launched scripts run in.
//
// Main follows the usual command-line shell convention: the first element of
// argv names the script to execute and is consumed by the shell, while the
// remaining elements are exposed to the script as the global arguments array.
// The global environment offers print, load, readFile, quit, version,
// environment, a CommonJS require and console.
//
// Exit codes: 0 on normal completion, the value given to quit(), 3 for an
// uncaught exception or syntax error, 4 when the script file cannot be read,
// 130 when the context is cancelled.
package jsshell
