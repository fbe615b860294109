// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the jsdocrun command.
//
// The root command forwards every argument to the script next to the
// executable. It never parses flags of its own, so --help, --version and
// anything else reach the script unchanged.
package cmd
