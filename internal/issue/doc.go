// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for the launcher.
//
// ActionableError names the failed operation, the resource involved and a
// list of suggestions. The Markdown catalog in issue.go adds longer help for
// the failures a user can fix by rearranging files next to the executable.
package issue
