// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/opt/tool/run.bin"), false},
		{"relative path", FilesystemPath("main.js"), false},
		{"path with spaces", FilesystemPath("/path/to/my tool/main.js"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
		})
	}
}

func TestFilesystemPath_ValidateAbsolute(t *testing.T) {
	t.Parallel()

	abs, err := filepath.Abs("main.js")
	if err != nil {
		t.Fatalf("filepath.Abs() error: %v", err)
	}

	if err := FilesystemPath(abs).ValidateAbsolute(); err != nil {
		t.Errorf("ValidateAbsolute(%q) = %v, want nil", abs, err)
	}

	err = FilesystemPath("main.js").ValidateAbsolute()
	if !errors.Is(err, ErrRelativeFilesystemPath) {
		t.Errorf("ValidateAbsolute(relative) = %v, want ErrRelativeFilesystemPath", err)
	}

	err = FilesystemPath("").ValidateAbsolute()
	if !errors.Is(err, ErrInvalidFilesystemPath) {
		t.Errorf("ValidateAbsolute(empty) = %v, want ErrInvalidFilesystemPath", err)
	}
}

func TestFilesystemPath_DirJoin(t *testing.T) {
	t.Parallel()

	exe := FilesystemPath(filepath.Join(string(filepath.Separator)+"opt", "tool", "run.bin"))
	got := exe.Dir().Join("main.js")
	want := FilesystemPath(filepath.Join(string(filepath.Separator)+"opt", "tool", "main.js"))
	if got != want {
		t.Errorf("Dir().Join() = %q, want %q", got, want)
	}
}
