// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers cover files laid out next to a fake launcher (MustWriteFile,
// MustMkdirAll, MustSymlink) and the working directory (MustChdir).
package testutil
