// SPDX-License-Identifier: MPL-2.0

package selfloc

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsdoc/jsdocrun/pkg/types"
)

// bundleSeparator splits a bundle reference into container and entry parts.
const bundleSeparator = "!/"

// ErrLocationUnresolved is returned when the running program's container path
// cannot be determined or parsed.
var ErrLocationUnresolved = errors.New("cannot resolve executable location")

//nolint:gochecknoglobals // Test seams for os.Executable and symlink resolution.
var (
	executableFn   = os.Executable
	evalSymlinksFn = filepath.EvalSymlinks
)

type (
	// Location is the absolute filesystem path of the program's container
	// (executable, archive or bundle).
	Location types.FilesystemPath

	// ResolutionError describes why a location descriptor could not be turned
	// into a Location. It wraps ErrLocationUnresolved.
	ResolutionError struct {
		Descriptor string
		Cause      error
	}
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Descriptor == "" {
		return fmt.Sprintf("%s: %v", ErrLocationUnresolved, e.Cause)
	}
	return fmt.Sprintf("%s from %q: %v", ErrLocationUnresolved, e.Descriptor, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *ResolutionError) Unwrap() []error {
	return []error{ErrLocationUnresolved, e.Cause}
}

// String returns the path.
func (l Location) String() string { return string(l) }

// Dir returns the directory containing the container.
func (l Location) Dir() types.FilesystemPath { return types.FilesystemPath(l).Dir() }

// Executable returns the location of the running executable with symlinks
// resolved. The result is always absolute.
func Executable() (Location, error) {
	exe, err := executableFn()
	if err != nil {
		return "", &ResolutionError{Cause: err}
	}
	if strings.TrimSpace(exe) == "" {
		return "", &ResolutionError{Cause: errors.New("runtime reported an empty executable path")}
	}

	resolved, err := evalSymlinksFn(exe)
	if err != nil {
		return "", &ResolutionError{Descriptor: exe, Cause: err}
	}

	return ParseDescriptor(resolved)
}

// ParseDescriptor extracts the container path from a self-location
// descriptor. The result must be absolute: a relative descriptor does not
// identify a location without knowing the working directory it came from.
func ParseDescriptor(descriptor string) (Location, error) {
	d := strings.TrimSpace(descriptor)
	if d == "" {
		return "", &ResolutionError{Descriptor: descriptor, Cause: errors.New("empty descriptor")}
	}

	path, err := containerPath(d)
	if err != nil {
		return "", &ResolutionError{Descriptor: descriptor, Cause: err}
	}

	loc := types.FilesystemPath(filepath.Clean(path))
	if err := loc.ValidateAbsolute(); err != nil {
		return "", &ResolutionError{Descriptor: descriptor, Cause: err}
	}
	return Location(loc), nil
}

// containerPath strips URL schemes and bundle entry suffixes from d.
func containerPath(d string) (string, error) {
	// Windows drive letters ("C:\...") parse as a one-letter URL scheme.
	if filepath.IsAbs(d) || !strings.Contains(d, ":") {
		return d, nil
	}

	u, err := url.Parse(d)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return fileURLPath(u)
	case "jar", "zip", "bundle":
		// The opaque part is itself a URL followed by the entry inside the
		// bundle: file:/opt/tool/run.jar!/Run.class
		inner, _, _ := strings.Cut(u.Opaque, bundleSeparator)
		if inner == "" {
			return "", fmt.Errorf("bundle reference %q has no container URL", d)
		}
		innerURL, err := url.Parse(inner)
		if err != nil {
			return "", err
		}
		if !strings.EqualFold(innerURL.Scheme, "file") {
			return "", fmt.Errorf("unsupported container scheme %q", innerURL.Scheme)
		}
		return fileURLPath(innerURL)
	default:
		return "", fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
}

// fileURLPath returns the decoded filesystem path of a file: URL. Both the
// hierarchical (file:///opt/x) and opaque (file:/opt/x) spellings are accepted.
func fileURLPath(u *url.URL) (string, error) {
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file URL refers to remote host %q", u.Host)
	}

	p := u.Path
	if u.Opaque != "" {
		unescaped, err := url.PathUnescape(u.Opaque)
		if err != nil {
			return "", err
		}
		p = unescaped
	}
	if p == "" {
		return "", errors.New("file URL has no path")
	}

	// file:///C:/tool/run.jar carries a leading slash before the drive.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}
