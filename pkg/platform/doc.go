// SPDX-License-Identifier: MPL-2.0

// Package platform names the operating systems jsdocrun runs on and the file
// names a script may not use on Windows.
package platform
