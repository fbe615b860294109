// SPDX-License-Identifier: MPL-2.0

// Package selfloc answers "which file was this program loaded from".
//
// Executable resolves the running binary through os.Executable and follows
// symlinks so a launcher linked into a bin directory still reports the real
// location next to its bundled resources. ParseDescriptor extracts the
// container path from a location descriptor that may be a plain path, a
// file: URL, or a bundle reference such as jar:file:/opt/tool/run.jar!/Run.class.
package selfloc
