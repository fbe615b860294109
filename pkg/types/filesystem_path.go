// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
	ErrInvalidFilesystemPath = errors.New("invalid filesystem path")
	// ErrRelativeFilesystemPath is returned by ValidateAbsolute for relative paths.
	ErrRelativeFilesystemPath = errors.New("filesystem path is not absolute")
)

type (
	// FilesystemPath represents an absolute or relative filesystem path.
	// A valid path must be non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value is
	// empty, whitespace-only, or relative where an absolute path is required.
	InvalidFilesystemPathError struct {
		Value  FilesystemPath
		Reason error
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p, Reason: ErrInvalidFilesystemPath}
	}
	return nil
}

// ValidateAbsolute is Validate plus a check that the path is absolute
// according to the host's path rules.
func (p FilesystemPath) ValidateAbsolute() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !filepath.IsAbs(string(p)) {
		return &InvalidFilesystemPathError{Value: p, Reason: ErrRelativeFilesystemPath}
	}
	return nil
}

// Dir returns the parent directory of the path.
func (p FilesystemPath) Dir() FilesystemPath { return FilesystemPath(filepath.Dir(string(p))) }

// Join appends elements to the path using the host separator.
func (p FilesystemPath) Join(elem ...string) FilesystemPath {
	return FilesystemPath(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	if errors.Is(e.Reason, ErrRelativeFilesystemPath) {
		return fmt.Sprintf("invalid filesystem path %q: must be absolute", e.Value)
	}
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns the reason sentinel for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error {
	if e.Reason == nil {
		return ErrInvalidFilesystemPath
	}
	return e.Reason
}
